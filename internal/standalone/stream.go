// Package standalone runs the plugin outside a plugin host: it feeds audio
// files and sound cards through Instance.ProcessReplacing and hosts the
// editor in a window of its own.
package standalone

import (
	"github.com/gopxl/beep/v2"
)

// DefaultBlockSize is the number of frames handed to the plugin per call.
const DefaultBlockSize = 512

// Processor is the audio callback of a plugin instance.
type Processor interface {
	ProcessReplacing(inputs, outputs [][]float32, numSampleFrames int)
}

// Streamer runs a stereo beep stream through a Processor in blocks of at
// most BlockSize frames. Buffers are allocated once, up front.
type Streamer struct {
	src Processor
	in  beep.Streamer

	left, right []float32
	channels    [][]float32

	// Before and After, when set, see each block before and after
	// processing. They must not keep the slices.
	Before func(block [][]float32)
	After  func(block [][]float32)
}

// NewStreamer wraps in so that every sample passes through p.
func NewStreamer(in beep.Streamer, p Processor, blockSize int) *Streamer {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Streamer{
		src:      p,
		in:       in,
		left:     make([]float32, blockSize),
		right:    make([]float32, blockSize),
		channels: make([][]float32, 2),
	}
}

// Stream implements beep.Streamer.
func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.in.Stream(samples)

	for off := 0; off < n; off += len(s.left) {
		m := min(len(s.left), n-off)
		block := samples[off : off+m]

		for i, frame := range block {
			s.left[i] = float32(frame[0])
			s.right[i] = float32(frame[1])
		}
		s.channels[0], s.channels[1] = s.left[:m], s.right[:m]

		if s.Before != nil {
			s.Before(s.channels)
		}
		// In place: the plugin allows input and output to alias.
		s.src.ProcessReplacing(s.channels, s.channels, m)
		if s.After != nil {
			s.After(s.channels)
		}

		for i := range block {
			block[i][0] = float64(s.left[i])
			block[i][1] = float64(s.right[i])
		}
	}
	return n, ok
}

// Err implements beep.Streamer.
func (s *Streamer) Err() error {
	return s.in.Err()
}
