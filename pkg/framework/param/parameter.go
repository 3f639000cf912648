// Package param holds the lock-free parameter cell shared by the host, the audio thread and the editor.
package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Revision identifies a published parameter value. It only ever grows.
type Revision uint64

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // normalized

	// Normalized value as float64 bits, read on the audio thread
	value atomic.Uint64
	// Bumped after every write that changed value
	revision atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// GetValue returns the current normalized value (0-1). Wait-free.
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue clamps value to 0-1 and publishes it. Not for the audio thread.
func (p *Parameter) SetValue(value float64) {
	bits := math.Float64bits(Clamp(value))
	if p.value.Swap(bits) != bits {
		p.revision.Add(1)
	}
}

// Revision returns the current revision token.
func (p *Parameter) Revision() Revision {
	return Revision(p.revision.Load())
}

// HasChangedSince reports whether a write landed after token was taken,
// and returns the token to use for the next call.
func (p *Parameter) HasChangedSince(token Revision) (bool, Revision) {
	current := Revision(p.revision.Load())
	return current != token, current
}

// GetPlainValue converts normalized to plain value
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue converts plain to normalized value
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// FormatValue returns formatted parameter value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(Clamp(normalized))
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses a plain-value string into a normalized value.
// Text outside the plain range is rejected rather than clamped.
func (p *Parameter) ParseValue(str string) (float64, error) {
	parse := p.parseFunc
	if parse == nil {
		parse = func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
	}
	plain, err := parse(str)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(plain) || plain < p.Min || plain > p.Max {
		return 0, fmt.Errorf("%s: %g outside [%g, %g]: %w", p.Name, plain, p.Min, p.Max, ErrOutOfRange)
	}
	return p.Normalize(plain), nil
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	return Clamp((plain - p.Min) / (p.Max - p.Min))
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Min + normalized*(p.Max-p.Min)
}

// Clamp limits v to the normalized range. NaN maps to 0.
func Clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	default:
		// v < 0 or NaN
		return 0
	}
}
