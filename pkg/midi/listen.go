package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/justyntemme/amplife/pkg/framework/debug"
)

// OpenIn finds an input port by name among the ports of the registered
// driver. An empty name picks the first port.
func OpenIn(name string) (drivers.In, error) {
	if name != "" {
		in, err := midi.FindInPort(name)
		if err != nil {
			return nil, fmt.Errorf("midi input %q: %w", name, err)
		}
		return in, nil
	}
	ins := midi.GetInPorts()
	if len(ins) == 0 {
		return nil, fmt.Errorf("no midi input ports")
	}
	return ins[0], nil
}

// Listen forwards every control change matching m that arrives on in to set,
// from the driver's goroutine. Call the returned stop to detach.
func Listen(in drivers.In, m Mapping, set func(float64), logger *debug.Logger) (stop func(), err error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = debug.Default()
	}
	logger = logger.With("midi")

	if !in.IsOpen() {
		if err := in.Open(); err != nil {
			return nil, fmt.Errorf("open %s: %w", in, err)
		}
	}

	stop, err = midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		if v, ok := m.Value(msg); ok {
			set(v)
		}
	}, midi.HandleError(func(err error) {
		logger.Warn("%s: %v", in, err)
	}))
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("listen on %s: %w", in, err)
	}

	logger.Info("listening for %s on %s", m, in)
	return stop, nil
}
