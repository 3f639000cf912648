package debug

import (
	"fmt"
	"math"

	"github.com/justyntemme/amplife/pkg/dsp/gain"
	"github.com/justyntemme/amplife/pkg/framework/param"
)

// AudioAnalyzer measures level and sanity of audio buffers.
type AudioAnalyzer struct {
	ClippingThreshold float32
	SilenceThreshold  float32
}

// NewAudioAnalyzer creates an analyzer with the usual thresholds.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		ClippingThreshold: 0.99,
		SilenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NaNCount       int
	Silent         bool
}

// Clipping reports whether any sample reached the clipping threshold.
func (r AnalysisResult) Clipping() bool {
	return r.ClippedSamples > 0
}

// PeakDb returns the peak level in dBFS.
func (r AnalysisResult) PeakDb() float64 {
	return gain.LinearToDb(float64(r.Peak))
}

// RMSDb returns the RMS level in dBFS.
func (r AnalysisResult) RMSDb() float64 {
	return gain.LinearToDb(float64(r.RMS))
}

// PeakText renders the peak level for a meter, e.g. "-6.0 dB".
func (r AnalysisResult) PeakText() string {
	return param.DecibelFormatter(r.PeakDb())
}

// String formats the result for a log line.
func (r AnalysisResult) String() string {
	s := fmt.Sprintf("samples=%d peak=%.3f (%s) rms=%.3f (%s) dc=%.6f",
		r.Samples, r.Peak, r.PeakText(), r.RMS, param.DecibelFormatter(r.RMSDb()), r.DC)
	if r.ClippedSamples > 0 {
		s += fmt.Sprintf(" clipped=%d", r.ClippedSamples)
	}
	if r.NaNCount > 0 {
		s += fmt.Sprintf(" nan=%d", r.NaNCount)
	}
	if r.Silent {
		s += " silent"
	}
	return s
}

// Analyze measures buffer. NaN samples are counted and otherwise ignored.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	return a.AnalyzeChannels([][]float32{buffer})
}

// AnalyzeChannels measures every channel as one signal.
func (a *AudioAnalyzer) AnalyzeChannels(channels [][]float32) AnalysisResult {
	var r AnalysisResult
	var sum, sumSquares float64

	for _, ch := range channels {
		for _, sample := range ch {
			if math.IsNaN(float64(sample)) {
				r.NaNCount++
				continue
			}
			r.Samples++

			abs := float32(math.Abs(float64(sample)))
			r.Peak = max(r.Peak, abs)
			if abs >= a.ClippingThreshold {
				r.ClippedSamples++
			}

			sum += float64(sample)
			sumSquares += float64(sample) * float64(sample)
		}
	}

	if r.Samples == 0 {
		return r
	}
	r.RMS = float32(math.Sqrt(sumSquares / float64(r.Samples)))
	r.DC = float32(sum / float64(r.Samples))
	r.Silent = r.RMS < a.SilenceThreshold
	return r
}

// Merge combines running results from consecutive blocks. RMS and DC are
// weighted by sample count.
func (r AnalysisResult) Merge(o AnalysisResult) AnalysisResult {
	n := r.Samples + o.Samples
	if n == 0 {
		r.NaNCount += o.NaNCount
		return r
	}
	wr, wo := float64(r.Samples)/float64(n), float64(o.Samples)/float64(n)
	ms := float64(r.RMS)*float64(r.RMS)*wr + float64(o.RMS)*float64(o.RMS)*wo

	return AnalysisResult{
		Samples:        n,
		Peak:           max(r.Peak, o.Peak),
		RMS:            float32(math.Sqrt(ms)),
		DC:             float32(float64(r.DC)*wr + float64(o.DC)*wo),
		ClippedSamples: r.ClippedSamples + o.ClippedSamples,
		NaNCount:       r.NaNCount + o.NaNCount,
		Silent:         (r.Samples == 0 || r.Silent) && (o.Samples == 0 || o.Silent),
	}
}

// LogBufferStats logs the analysis of a named buffer set at info level,
// escalating to warn when it clipped or held NaNs.
func LogBufferStats(l *Logger, name string, r AnalysisResult) {
	if r.Clipping() || r.NaNCount > 0 {
		l.Warn("%s: %s", name, r)
		return
	}
	l.Info("%s: %s", name, r)
}
