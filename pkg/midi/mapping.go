// Package midi maps a MIDI control change onto the gain parameter, so a
// hardware knob can act as host automation in the standalone host.
package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// AnyChannel matches control changes on every channel.
const AnyChannel = -1

// Mapping selects the controller that drives the parameter.
type Mapping struct {
	Channel    int   // 0-15, or AnyChannel
	Controller uint8 // 0-127
}

// DefaultMapping listens to CC 7 (channel volume) on any channel.
var DefaultMapping = Mapping{Channel: AnyChannel, Controller: 7}

// Validate checks channel and controller ranges.
func (m Mapping) Validate() error {
	if m.Channel < AnyChannel || m.Channel > 15 {
		return fmt.Errorf("midi channel %d out of range", m.Channel)
	}
	if m.Controller > 127 {
		return fmt.Errorf("midi controller %d out of range", m.Controller)
	}
	return nil
}

// Value returns the normalized value carried by msg when msg is a control
// change for this mapping: 0 maps to 0.0 and 127 to 1.0.
func (m Mapping) Value(msg midi.Message) (float64, bool) {
	var ch, ctl, val uint8
	if !msg.GetControlChange(&ch, &ctl, &val) {
		return 0, false
	}
	if ctl != m.Controller || (m.Channel != AnyChannel && int(ch) != m.Channel) {
		return 0, false
	}
	return float64(val) / 127, true
}

func (m Mapping) String() string {
	if m.Channel == AnyChannel {
		return fmt.Sprintf("CC %d on any channel", m.Controller)
	}
	return fmt.Sprintf("CC %d on channel %d", m.Controller, m.Channel+1)
}
