// Package live runs the plugin on the default sound card through PortAudio.
package live

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/justyntemme/amplife/internal/standalone"
)

// Channels is the number of input and output channels opened.
const Channels = 2

// Stream is a full-duplex stream whose callback is the plugin's audio thread.
type Stream struct {
	*portaudio.Stream
}

// Open opens the default input and output devices. The caller must have
// called portaudio.Initialize.
func Open(p standalone.Processor, sampleRate float64, framesPerBuffer int) (*Stream, error) {
	s, err := portaudio.OpenDefaultStream(Channels, Channels, sampleRate, framesPerBuffer,
		func(in, out [][]float32) {
			frames := 0
			if len(out) > 0 {
				frames = len(out[0])
			}
			p.ProcessReplacing(in, out, frames)
		})
	if err != nil {
		return nil, fmt.Errorf("open default stream: %w", err)
	}
	return &Stream{Stream: s}, nil
}

// Devices describes the default input and output devices.
func Devices() (string, error) {
	in, err := portaudio.DefaultInputDevice()
	if err != nil {
		return "", fmt.Errorf("default input: %w", err)
	}
	out, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return "", fmt.Errorf("default output: %w", err)
	}
	return fmt.Sprintf("in: %s, out: %s", in.Name, out.Name), nil
}
