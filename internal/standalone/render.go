package standalone

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"

	"github.com/justyntemme/amplife/pkg/framework/debug"
)

// RenderOptions configures Render.
type RenderOptions struct {
	BlockSize int
	Logger    *debug.Logger
}

// RenderStats summarizes an offline render.
type RenderStats struct {
	Format  beep.Format
	Frames  int
	Blocks  int
	Input   debug.AnalysisResult
	Output  debug.AnalysisResult
	Elapsed time.Duration
	Load    float64 // processing time as a percentage of the audio duration
}

// Render decodes a WAV file from in, runs it through p and encodes the result
// to out in the input's format.
func Render(in io.Reader, out io.WriteSeeker, p Processor, opts RenderOptions) (RenderStats, error) {
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = debug.Default()
	}

	src, format, err := wav.Decode(in)
	if err != nil {
		return RenderStats{}, fmt.Errorf("decode wav: %w", err)
	}
	defer src.Close()

	stats := RenderStats{Format: format}
	profiler := debug.NewBlockProfiler(float64(format.SampleRate))
	analyzer := debug.NewAudioAnalyzer()

	timed := processorFunc(func(inputs, outputs [][]float32, frames int) {
		profiler.Block(frames, func() { p.ProcessReplacing(inputs, outputs, frames) })
	})
	s := NewStreamer(src, timed, opts.BlockSize)
	s.Before = func(block [][]float32) {
		stats.Input = stats.Input.Merge(analyzer.AnalyzeChannels(block))
	}
	s.After = func(block [][]float32) {
		stats.Frames += len(block[0])
		stats.Blocks++
		stats.Output = stats.Output.Merge(analyzer.AnalyzeChannels(block))
	}

	start := time.Now()
	if err := wav.Encode(out, s, format); err != nil {
		return stats, fmt.Errorf("encode wav: %w", err)
	}
	stats.Elapsed = time.Since(start)
	stats.Load = profiler.Load()

	logger.Debug("render profile:\n%s", profiler.AudioReport())
	return stats, nil
}

type processorFunc func(inputs, outputs [][]float32, frames int)

func (f processorFunc) ProcessReplacing(inputs, outputs [][]float32, frames int) {
	f(inputs, outputs, frames)
}
