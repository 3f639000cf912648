package standalone

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gopxl/beep/v2"
)

// bytesPerFrame is one interleaved stereo float32 frame.
const bytesPerFrame = 2 * 4

// Reader exposes a beep stream as interleaved little-endian float32 stereo
// bytes, the format audio players such as oto pull from.
type Reader struct {
	s      beep.Streamer
	frames [][2]float64
	done   bool
}

// NewReader creates a reader pulling at most blockSize frames per Read.
func NewReader(s beep.Streamer, blockSize int) *Reader {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Reader{s: s, frames: make([][2]float64, blockSize)}
}

// Read implements io.Reader. It returns io.EOF once the stream is drained, or
// the stream's error if it failed.
func (r *Reader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.eof()
	}
	want := min(len(p)/bytesPerFrame, len(r.frames))
	if want == 0 {
		return 0, nil
	}

	n, ok := r.s.Stream(r.frames[:want])
	for i, frame := range r.frames[:n] {
		b := p[i*bytesPerFrame:]
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(frame[0])))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(frame[1])))
	}

	if !ok {
		r.done = true
		if n == 0 {
			return 0, r.eof()
		}
	}
	return n * bytesPerFrame, nil
}

func (r *Reader) eof() error {
	if err := r.s.Err(); err != nil {
		return err
	}
	return io.EOF
}
