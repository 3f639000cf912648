package param

// Common parameter helpers

// MaxGain is the largest multiplier a normalized value of 1 maps to.
const MaxGain = 2.0

// GainMultiplierParameter creates a linear gain parameter presented as a
// multiplier from 0x to 2x, defaulting to unity.
func GainMultiplierParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(0, MaxGain).
		Default(1).
		Unit("x").
		Formatter(MultiplierFormatter, MultiplierParser)
}
