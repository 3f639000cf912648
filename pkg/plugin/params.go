package plugin

import (
	"errors"
	"fmt"

	"github.com/justyntemme/amplife/pkg/framework/param"
	"github.com/justyntemme/amplife/pkg/framework/state"
)

var (
	// ErrInvalidIndex is returned for a parameter index other than 0.
	ErrInvalidIndex = errors.New("invalid parameter index")
	// ErrOutOfRange is returned for parameter text outside the gain range.
	ErrOutOfRange = param.ErrOutOfRange
)

// ParameterCount returns the number of parameters, always 1.
func (i *Instance) ParameterCount() int32 {
	return 1
}

func (i *Instance) parameter(index int32) (*param.Parameter, error) {
	if index != int32(state.ParamIDGain) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return i.store.Parameter(), nil
}

// GetParameter returns the normalized value, or 0 for an invalid index.
func (i *Instance) GetParameter(index int32) float64 {
	if _, err := i.parameter(index); err != nil {
		return 0
	}
	return i.store.Read()
}

// SetParameter is host automation: it clamps and stores value. Invalid
// indexes are ignored. The host is not notified of its own writes.
func (i *Instance) SetParameter(index int32, value float64) {
	if _, err := i.parameter(index); err != nil {
		return
	}
	i.store.Write(value)
}

// GetParameterName returns "Volume", or "" for an invalid index.
func (i *Instance) GetParameterName(index int32) string {
	p, err := i.parameter(index)
	if err != nil {
		return ""
	}
	return p.Name
}

// GetParameterLabel returns the unit label "x".
func (i *Instance) GetParameterLabel(index int32) string {
	p, err := i.parameter(index)
	if err != nil {
		return ""
	}
	return p.Unit
}

// GetParameterDisplay returns the gain with two decimals, e.g. "1.00".
func (i *Instance) GetParameterDisplay(index int32) string {
	if _, err := i.parameter(index); err != nil {
		return ""
	}
	return i.store.DisplayText()
}

// ParseParameter converts gain text such as "1.5" or "1.5x" into a normalized
// value without storing it.
func (i *Instance) ParseParameter(index int32, text string) (float64, error) {
	p, err := i.parameter(index)
	if err != nil {
		return 0, err
	}
	v, err := p.ParseValue(text)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", text, err)
	}
	return v, nil
}

// StringToParameter stores gain text typed into the host. Text outside the
// gain range 0..2 is rejected and leaves the value unchanged.
func (i *Instance) StringToParameter(index int32, text string) bool {
	v, err := i.ParseParameter(index, text)
	if err != nil {
		i.logger.Debug("StringToParameter: %v", err)
		return false
	}
	i.store.Write(v)
	return true
}
