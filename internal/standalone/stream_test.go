package standalone

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"

	"github.com/justyntemme/amplife/pkg/editor"
	"github.com/justyntemme/amplife/pkg/framework/debug"
	"github.com/justyntemme/amplife/pkg/plugin"
)

// constant streams frames of (l, r).
func constant(frames int, l, r float64) beep.Streamer {
	return beep.Take(frames, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{l, r}
		}
		return len(samples), true
	}))
}

type blockCounter struct {
	sizes []int
}

func (c *blockCounter) ProcessReplacing(inputs, outputs [][]float32, frames int) {
	c.sizes = append(c.sizes, frames)
	for ch := range outputs {
		for i := range outputs[ch][:frames] {
			outputs[ch][i] = inputs[ch][i] * -1
		}
	}
}

func TestStreamerBlocks(t *testing.T) {
	counter := &blockCounter{}
	s := NewStreamer(constant(10, 0.5, -0.25), counter, 4)

	samples := make([][2]float64, 16)
	n, ok := s.Stream(samples)
	if n != 10 || !ok {
		t.Fatalf("Stream() = %d, %v; want 10, true", n, ok)
	}
	if want := []int{4, 4, 2}; len(counter.sizes) != 3 || counter.sizes[0] != 4 || counter.sizes[2] != 2 {
		t.Errorf("block sizes = %v, want %v", counter.sizes, want)
	}
	for i := 0; i < n; i++ {
		if samples[i] != [2]float64{-0.5, 0.25} {
			t.Fatalf("sample %d = %v", i, samples[i])
		}
	}

	if n, ok := s.Stream(samples); n != 0 || ok {
		t.Errorf("drained Stream() = %d, %v", n, ok)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestStreamerAppliesGain(t *testing.T) {
	inst := plugin.New(plugin.WithLogger(debug.Discard()), plugin.WithInitialValue(0.75))

	var before, after float32
	s := NewStreamer(constant(3, 0.5, 0.25), inst, 0)
	s.Before = func(block [][]float32) { before = block[0][0] }
	s.After = func(block [][]float32) { after = block[0][0] }

	samples := make([][2]float64, 3)
	s.Stream(samples)

	if before != 0.5 || after != 0.75 {
		t.Errorf("hooks saw %v -> %v, want 0.5 -> 0.75", before, after)
	}
	if samples[2] != [2]float64{0.75, 0.375} {
		t.Errorf("sample = %v, want [0.75 0.375]", samples[2])
	}
}

func TestReader(t *testing.T) {
	r := NewReader(constant(3, 0.5, -1), 2)

	p := make([]byte, 64)
	n, err := r.Read(p)
	if err != nil || n != 2*bytesPerFrame {
		t.Fatalf("Read() = %d, %v; want %d, nil", n, err, 2*bytesPerFrame)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(p[0:])); got != 0.5 {
		t.Errorf("left = %v, want 0.5", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(p[4:])); got != -1 {
		t.Errorf("right = %v, want -1", got)
	}

	if n, err := r.Read(p[:3]); n != 0 || err != nil {
		t.Errorf("short buffer Read() = %d, %v", n, err)
	}

	n, err = r.Read(p)
	if n != bytesPerFrame {
		t.Fatalf("Read() = %d, %v; want one frame", n, err)
	}

	for i := 0; i < 3; i++ {
		if n, err := r.Read(p); n != 0 || !errors.Is(err, io.EOF) {
			t.Fatalf("drained Read() = %d, %v; want 0, EOF", n, err)
		}
	}
}

func TestReaderPropagatesError(t *testing.T) {
	errBroken := errors.New("broken stream")
	r := NewReader(&failingStreamer{err: errBroken}, 8)

	if _, err := r.Read(make([]byte, 64)); !errors.Is(err, errBroken) {
		t.Errorf("Read() error = %v, want %v", err, errBroken)
	}
}

type failingStreamer struct{ err error }

func (f *failingStreamer) Stream([][2]float64) (int, bool) { return 0, false }
func (f *failingStreamer) Err() error                      { return f.err }

func writeWAV(t *testing.T, path string, s beep.Streamer, format beep.Format) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := wav.Encode(f, s, format); err != nil {
		t.Fatal(err)
	}
}

func TestRenderCountsDeliveredBlocks(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	writeWAV(t, inPath, constant(1000, 0.25, -0.5), beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2})

	in, err := os.Open(inPath)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	out, err := os.Create(filepath.Join(dir, "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	var calls, frames int
	counter := processorFunc(func(inputs, outputs [][]float32, n int) {
		calls++
		frames += n
	})

	// The encoder pulls fewer frames than the block size, so blocks are
	// counted as they arrive rather than assumed to be full.
	stats, err := Render(in, out, counter, RenderOptions{BlockSize: 2048, Logger: debug.Discard()})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if stats.Blocks != calls || stats.Frames != frames || frames != 1000 {
		t.Errorf("stats blocks/frames = %d/%d, processor saw %d/%d", stats.Blocks, stats.Frames, calls, frames)
	}
	if calls < 2 {
		t.Errorf("1000 frames arrived in %d block(s), want the encoder's shorter pulls", calls)
	}
	if stats.Load < 0 {
		t.Errorf("Load = %v", stats.Load)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")

	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	writeWAV(t, inPath, constant(1000, 0.25, -0.5), format)

	in, err := os.Open(inPath)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	out, err := os.Create(outPath)
	if err != nil {
		t.Fatal(err)
	}

	inst := plugin.New(plugin.WithLogger(debug.Discard()), plugin.WithInitialValue(0.75))
	stats, err := Render(in, out, inst, RenderOptions{BlockSize: 128, Logger: debug.Discard()})
	out.Close()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if stats.Frames != 1000 || stats.Format.SampleRate != 8000 {
		t.Errorf("stats = %+v", stats)
	}
	// 16-bit quantization, twice
	const quantum = 1.0 / 8192
	if math.Abs(float64(stats.Input.Peak)-0.5) > quantum || math.Abs(float64(stats.Output.Peak)-0.75) > quantum {
		t.Errorf("peaks in/out = %v/%v, want 0.5/0.75", stats.Input.Peak, stats.Output.Peak)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, got, err := wav.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.SampleRate != format.SampleRate || got.NumChannels != 2 {
		t.Errorf("output format = %+v", got)
	}

	samples := make([][2]float64, 2000)
	n, _ := decoded.Stream(samples)
	if n != 1000 {
		t.Fatalf("decoded %d frames, want 1000", n)
	}
	for i := 0; i < n; i++ {
		if math.Abs(samples[i][0]-0.375) > quantum || math.Abs(samples[i][1]+0.75) > quantum {
			t.Fatalf("frame %d = %v, want [0.375 -0.75]", i, samples[i])
		}
	}
}

func TestRenderRejectsGarbage(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	inst := plugin.New(plugin.WithLogger(debug.Discard()))
	if _, err := Render(io.LimitReader(zeroReader{}, 64), out, inst, RenderOptions{Logger: debug.Discard()}); err == nil {
		t.Error("Render() accepted a non-WAV input")
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

func TestPointerTracker(t *testing.T) {
	var tr PointerTracker

	steps := []struct {
		name  string
		state PointerState
		want  []editor.Event
	}{
		{"Enter", PointerState{X: 10, Y: 10, Inside: true}, []editor.Event{editor.PointerMove{X: 10, Y: 10}}},
		{"Still", PointerState{X: 10, Y: 10, Inside: true}, nil},
		{"Move and press", PointerState{X: 400, Y: 250, Left: true, Inside: true}, []editor.Event{
			editor.PointerMove{X: 400, Y: 250},
			editor.PointerDown{Button: editor.ButtonLeft},
		}},
		{"Leave holding", PointerState{X: 400, Y: -20, Left: true}, []editor.Event{
			editor.PointerMove{X: 400, Y: -20},
			editor.PointerLeave{Released: false},
		}},
		{"Captured move", PointerState{X: 400, Y: -40, Left: true}, []editor.Event{editor.PointerMove{X: 400, Y: -40}}},
		{"Release outside", PointerState{X: 400, Y: -40}, []editor.Event{editor.PointerUp{Button: editor.ButtonLeft}}},
		{"Uncaptured move", PointerState{X: 0, Y: -80}, nil},
		{"Return and right click", PointerState{X: 5, Y: 5, Right: true, Inside: true}, []editor.Event{
			editor.PointerMove{X: 5, Y: 5},
			editor.PointerDown{Button: editor.ButtonRight},
		}},
		{"Leave released", PointerState{X: 5, Y: 5}, []editor.Event{
			editor.PointerUp{Button: editor.ButtonRight},
			editor.PointerLeave{Released: true},
		}},
	}

	for _, step := range steps {
		got := tr.Update(step.state, nil)
		if len(got) != len(step.want) {
			t.Fatalf("%s: events = %#v, want %#v", step.name, got, step.want)
		}
		for i := range got {
			if got[i] != step.want[i] {
				t.Errorf("%s: event %d = %#v, want %#v", step.name, i, got[i], step.want[i])
			}
		}
	}
}
