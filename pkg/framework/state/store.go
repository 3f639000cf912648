// Package state owns the single ground-truth value shared by the host, the audio
// thread and the editor of one plugin instance.
package state

import (
	"github.com/justyntemme/amplife/pkg/framework/param"
)

// ParamIDGain is the ID of the only parameter.
const ParamIDGain uint32 = 0

// Store holds exactly one parameter. Reads are wait-free and safe on the audio
// thread; writes are atomic, last writer wins. No locks are taken anywhere.
type Store struct {
	gain *param.Parameter
}

// NewStore creates a store holding the gain parameter at its default (unity).
func NewStore() *Store {
	return &Store{
		gain: param.GainMultiplierParameter(ParamIDGain, "Volume").
			ShortName("Vol").
			Build(),
	}
}

// Read returns the normalized value in [0, 1].
func (s *Store) Read() float64 {
	return s.gain.GetValue()
}

// Write clamps v to [0, 1] and publishes it. Never call from the audio thread.
func (s *Store) Write(v float64) {
	s.gain.SetValue(v)
}

// HasChangedSince reports whether the value changed after token was obtained.
func (s *Store) HasChangedSince(token param.Revision) (bool, param.Revision) {
	return s.gain.HasChangedSince(token)
}

// Revision returns the current token for HasChangedSince.
func (s *Store) Revision() param.Revision {
	return s.gain.Revision()
}

// Gain returns the multiplier derived from the current value.
func (s *Store) Gain() float64 {
	return s.gain.GetPlainValue()
}

// DisplayText renders the current gain for a readout.
func (s *Store) DisplayText() string {
	return s.gain.FormatValue(s.gain.GetValue())
}

// Parameter exposes the metadata of the stored parameter.
func (s *Store) Parameter() *param.Parameter {
	return s.gain
}
