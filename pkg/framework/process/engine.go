package process

import (
	"github.com/justyntemme/amplife/pkg/dsp/gain"
)

// Snapshot is the read-only view of the parameter the engine consumes.
// Read must be wait-free.
type Snapshot interface {
	Read() float64
}

// Engine applies the gain parameter to audio blocks. Its processing methods
// never allocate, lock, log, or write to the parameter, and may only be called
// from the audio thread.
type Engine struct {
	source Snapshot
	ctx    *Context
}

// NewEngine creates an engine reading its gain from source.
func NewEngine(source Snapshot) *Engine {
	return &Engine{
		source: source,
		ctx:    NewContext(),
	}
}

// snapshot reads the parameter once; the result holds for the whole block.
func (e *Engine) snapshot() float32 {
	return gain.FromNormalized(e.source.Read())
}

// ProcessBlock writes input*gain into output for min(len(input), len(output))
// frames. input and output may be the same slice.
func (e *Engine) ProcessBlock(input, output []float32) {
	gain.ApplyBufferTo(input, e.snapshot(), output)
}

// Process runs one block across every channel of ctx with a single gain.
func (e *Engine) Process(ctx *Context) {
	g := e.snapshot()
	for ch := 0; ch < ctx.NumChannels(); ch++ {
		n := ctx.Frames(ch)
		gain.ApplyBufferTo(ctx.Input[ch][:n], g, ctx.Output[ch][:n])
	}
}

// ProcessReplacing is the host-callback form of Process. numSampleFrames
// further bounds every channel; values <= 0 make the call a no-op.
func (e *Engine) ProcessReplacing(inputs, outputs [][]float32, numSampleFrames int) {
	if numSampleFrames < 0 {
		numSampleFrames = 0
	}
	e.ctx.Set(inputs, outputs, numSampleFrames)
	e.Process(e.ctx)
	e.ctx.Set(nil, nil, -1)
}
