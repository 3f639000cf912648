package midi

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestMappingValue(t *testing.T) {
	m := Mapping{Channel: 2, Controller: 7}

	tests := []struct {
		name   string
		msg    midi.Message
		want   float64
		wantOK bool
	}{
		{"Full", midi.ControlChange(2, 7, 127), 1, true},
		{"Zero", midi.ControlChange(2, 7, 0), 0, true},
		{"Middle", midi.ControlChange(2, 7, 127/2+1), 64.0 / 127, true},
		{"Other channel", midi.ControlChange(3, 7, 127), 0, false},
		{"Other controller", midi.ControlChange(2, 1, 127), 0, false},
		{"Note", midi.NoteOn(2, 60, 100), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Value(tt.msg)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Value(%v) = %v, %v; want %v, %v", tt.msg, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMappingAnyChannel(t *testing.T) {
	for ch := uint8(0); ch < 16; ch++ {
		if _, ok := DefaultMapping.Value(midi.ControlChange(ch, 7, 10)); !ok {
			t.Errorf("DefaultMapping ignored channel %d", ch)
		}
	}
}

func TestMappingValidate(t *testing.T) {
	tests := []struct {
		m       Mapping
		wantErr bool
	}{
		{DefaultMapping, false},
		{Mapping{Channel: 15, Controller: 127}, false},
		{Mapping{Channel: 16, Controller: 7}, true},
		{Mapping{Channel: -2, Controller: 7}, true},
		{Mapping{Channel: 0, Controller: 128}, true},
	}

	for _, tt := range tests {
		if err := tt.m.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%+v.Validate() error = %v, wantErr %v", tt.m, err, tt.wantErr)
		}
	}
}

func TestMappingString(t *testing.T) {
	if got := (Mapping{Channel: 0, Controller: 1}).String(); got != "CC 1 on channel 1" {
		t.Errorf("String() = %q", got)
	}
	if got := DefaultMapping.String(); got != "CC 7 on any channel" {
		t.Errorf("String() = %q", got)
	}
}
