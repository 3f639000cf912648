package debug

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects timing statistics for named sections. It is used by the
// offline renderer; the live audio callback is never profiled.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration

	samples     []time.Duration
	sampleIndex int
}

// NewProfiler creates a profiler keeping the last maxSamples timings per section.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Start begins timing a named section. Call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of fn.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record stores one timing for name.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{
			Name:    name,
			Min:     elapsed,
			Max:     elapsed,
			samples: make([]time.Duration, 0, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	m.Min = min(m.Min, elapsed)
	m.Max = max(m.Max, elapsed)

	if len(m.samples) < p.maxSamples {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.sampleIndex] = elapsed
	}
	m.sampleIndex = (m.sampleIndex + 1) % p.maxSamples
}

// Measurement returns a copy of the named measurement.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	c := *m
	c.samples = slices.Clone(m.samples)
	return c, true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report renders every measurement, sorted by name.
func (p *Profiler) Report() string {
	p.mu.RLock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.RUnlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.Measurement(name)
		fmt.Fprintf(&sb, "%s: count=%d avg=%v min=%v max=%v p99=%v\n",
			name, m.Count, m.Average(), m.Min, m.Max, m.Percentile(99))
	}
	return sb.String()
}

// Average returns the mean time of the measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the p-th percentile (0-100) of the retained samples.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	sorted := slices.Clone(m.samples)
	slices.Sort(sorted)
	p = min(max(p, 0), 100)
	return sorted[int(float64(len(sorted)-1)*p/100)]
}

// BlockProfiler times audio blocks and relates them to the real time each
// block represents. Blocks may differ in size.
type BlockProfiler struct {
	*Profiler
	sampleRate float64

	frames atomic.Int64 // frames in every recorded block
	busy   atomic.Int64 // time spent on them, in nanoseconds
}

// BlockSection is the measurement name used by BlockProfiler.
const BlockSection = "ProcessReplacing"

// NewBlockProfiler creates a block profiler for the given sample rate.
func NewBlockProfiler(sampleRate float64) *BlockProfiler {
	return &BlockProfiler{
		Profiler:   NewProfiler(1000),
		sampleRate: sampleRate,
	}
}

// Block times fn as one processed block of frames frames and returns the
// elapsed time.
func (b *BlockProfiler) Block(frames int, fn func()) time.Duration {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	if b.enabled.Load() {
		b.RecordBlock(frames, elapsed)
	}
	return elapsed
}

// RecordBlock stores the timing of one block of frames frames.
func (b *BlockProfiler) RecordBlock(frames int, elapsed time.Duration) {
	b.Record(BlockSection, elapsed)
	b.frames.Add(int64(max(frames, 0)))
	b.busy.Add(int64(elapsed))
}

// Load returns the processing time of every recorded block as a percentage
// of the audio duration of their frames.
func (b *BlockProfiler) Load() float64 {
	frames := b.frames.Load()
	if frames <= 0 || b.sampleRate <= 0 {
		return 0
	}
	audio := float64(frames) / b.sampleRate * float64(time.Second)
	return float64(b.busy.Load()) / audio * 100
}

// AverageFrames returns the mean block size recorded so far.
func (b *BlockProfiler) AverageFrames() float64 {
	m, ok := b.Measurement(BlockSection)
	if !ok || m.Count == 0 {
		return 0
	}
	return float64(b.frames.Load()) / float64(m.Count)
}

// Reset clears all measurements and the frame count.
func (b *BlockProfiler) Reset() {
	b.Profiler.Reset()
	b.frames.Store(0)
	b.busy.Store(0)
}

// AudioReport renders the block statistics with the computed load.
func (b *BlockProfiler) AudioReport() string {
	return fmt.Sprintf("%ssample rate=%.0f Hz block=%.1f frames load=%.2f%%",
		b.Report(), b.sampleRate, b.AverageFrames(), b.Load())
}
