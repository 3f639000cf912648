package commands

import (
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // registers the system MIDI driver

	"github.com/justyntemme/amplife/cmd/amplife/internal/config"
	"github.com/justyntemme/amplife/pkg/framework/debug"
	"github.com/justyntemme/amplife/pkg/midi"
	"github.com/justyntemme/amplife/pkg/plugin"
)

// attachMIDI routes the configured controller to the gain parameter. The
// returned func detaches and closes the driver; it is a no-op when MIDI is
// disabled.
func attachMIDI(cfg *config.Config, inst *plugin.Instance, logger *debug.Logger) (func(), error) {
	if !cfg.MIDI.Enabled {
		return func() {}, nil
	}

	in, err := midi.OpenIn(cfg.MIDI.Port)
	if err != nil {
		gomidi.CloseDriver()
		return nil, err
	}

	m := midi.Mapping{Channel: cfg.MIDI.Channel, Controller: uint8(cfg.MIDI.Controller)}
	stop, err := midi.Listen(in, m, func(v float64) {
		inst.SetParameter(0, v)
	}, logger)
	if err != nil {
		gomidi.CloseDriver()
		return nil, err
	}

	return func() {
		stop()
		gomidi.CloseDriver()
	}, nil
}
