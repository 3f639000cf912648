package editor

import "math"

// Artwork geometry at scale 1.
const (
	artworkWidth      = 1200
	artworkHeight     = 800
	artworkKnobX      = 800
	artworkKnobY      = 500
	artworkKnobRadius = 200
)

// DefaultScale is the display scale of the editor window.
const DefaultScale = 0.5

// knobSpeed is the value change of a drag spanning the full window height.
const knobSpeed = 0.5

// knobSweep is the total rotation of the knob pointer, in radians (300°).
const knobSweep = 300 * math.Pi / 180

// Layout is the pixel geometry of the editor window.
type Layout struct {
	Width, Height int
	KnobX, KnobY  float64
	KnobRadius    float64
}

// NewLayout returns the window geometry at the given display scale.
// Non-positive scales fall back to DefaultScale.
func NewLayout(scale float64) Layout {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = DefaultScale
	}
	return Layout{
		Width:      int(artworkWidth * scale),
		Height:     int(artworkHeight * scale),
		KnobX:      artworkKnobX * scale,
		KnobY:      artworkKnobY * scale,
		KnobRadius: artworkKnobRadius * scale,
	}
}

// DefaultLayout is 600x400 with the knob centered at (400, 250), radius 100.
func DefaultLayout() Layout {
	return NewLayout(DefaultScale)
}

// Contains reports whether (x, y) lies strictly inside the knob.
func (l Layout) Contains(x, y float64) bool {
	dx, dy := x-l.KnobX, y-l.KnobY
	return dx*dx+dy*dy < l.KnobRadius*l.KnobRadius
}

// Sensitivity is the value change per pixel of vertical drag: half the range
// over the window height.
func (l Layout) Sensitivity() float64 {
	if l.Height <= 0 {
		return 0
	}
	return knobSpeed / float64(l.Height)
}

// KnobAngle maps a normalized value to the pointer angle in radians,
// clockwise from 12 o'clock: -150° at 0, +150° at 1.
func KnobAngle(value float64) float64 {
	return (value - 0.5) * knobSweep
}

// KnobTip returns the end point of the knob pointer for value.
func (l Layout) KnobTip(value float64) (x, y float64) {
	a := KnobAngle(value)
	return l.KnobX + l.KnobRadius*math.Sin(a), l.KnobY - l.KnobRadius*math.Cos(a)
}
