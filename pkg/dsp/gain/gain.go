// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"math"
)

// Constants for gain conversion
const (
	// MinDB is the minimum dB value (effectively -infinity)
	MinDB = -200.0

	// Max is the multiplier a fully open control maps to.
	Max = 2.0
)

// FromNormalized maps a normalized control value in [0, 1] to a linear gain in [0, Max].
func FromNormalized(normalized float64) float32 {
	return float32(normalized * Max)
}

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// ApplyBufferTo applies gain to src and stores the result in dst.
// Only min(len(src), len(dst)) samples are touched; src and dst may alias.
func ApplyBufferTo(src []float32, gain float32, dst []float32) int {
	length := len(src)
	if len(dst) < length {
		length = len(dst)
	}
	src, dst = src[:length], dst[:length]

	for i := range dst {
		dst[i] = src[i] * gain
	}
	return length
}
