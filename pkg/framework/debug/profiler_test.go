package debug

import (
	"strings"
	"testing"
	"time"
)

func TestProfiler(t *testing.T) {
	t.Run("BasicProfiling", func(t *testing.T) {
		p := NewProfiler(100)

		stop := p.Start("test")
		time.Sleep(10 * time.Millisecond)
		stop()

		m, exists := p.Measurement("test")
		if !exists {
			t.Fatal("Measurement not found")
		}
		if m.Count != 1 {
			t.Errorf("Expected count 1, got %d", m.Count)
		}
		if m.Last < 10*time.Millisecond {
			t.Error("Timing seems too short")
		}
	})

	t.Run("Statistics", func(t *testing.T) {
		p := NewProfiler(4)
		for _, d := range []time.Duration{5, 1, 3, 2, 4, 6} {
			p.Record("stats", d*time.Millisecond)
		}

		m, _ := p.Measurement("stats")
		if m.Count != 6 {
			t.Errorf("Count = %d, want 6", m.Count)
		}
		if m.Min != time.Millisecond || m.Max != 6*time.Millisecond {
			t.Errorf("Min/Max = %v/%v", m.Min, m.Max)
		}
		if m.Average() != 3500*time.Microsecond {
			t.Errorf("Average() = %v, want 3.5ms", m.Average())
		}
		// Only the last four samples are kept: 3, 2, 4, 6.
		if got := m.Percentile(0); got != 2*time.Millisecond {
			t.Errorf("Percentile(0) = %v, want 2ms", got)
		}
		if got := m.Percentile(100); got != 6*time.Millisecond {
			t.Errorf("Percentile(100) = %v, want 6ms", got)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		p := NewProfiler(10)
		p.SetEnabled(false)

		called := false
		p.Time("off", func() { called = true })

		if !called {
			t.Error("Function not called")
		}
		if _, exists := p.Measurement("off"); exists {
			t.Error("Disabled profiler recorded a measurement")
		}
	})

	t.Run("Report", func(t *testing.T) {
		p := NewProfiler(10)
		if got := p.Report(); got != "No measurements recorded" {
			t.Errorf("empty Report() = %q", got)
		}

		p.Record("b", time.Millisecond)
		p.Record("a", time.Millisecond)
		report := p.Report()
		if strings.Index(report, "a:") > strings.Index(report, "b:") {
			t.Errorf("Report not sorted:\n%s", report)
		}

		p.Reset()
		if _, exists := p.Measurement("a"); exists {
			t.Error("Reset() kept measurements")
		}
	})
}

func TestBlockProfiler(t *testing.T) {
	b := NewBlockProfiler(1000)

	if b.Load() != 0 {
		t.Error("Load() before any block should be 0")
	}

	// 100 frames at 1kHz is 100ms of audio; 50ms is half of it.
	b.RecordBlock(100, 50*time.Millisecond)
	if got := b.Load(); got != 50 {
		t.Errorf("Load() = %v, want 50", got)
	}

	// A larger block with the same cost lowers the load: 100ms over 400ms.
	b.RecordBlock(300, 50*time.Millisecond)
	if got := b.Load(); got != 25 {
		t.Errorf("Load() after mixed blocks = %v, want 25", got)
	}
	if got := b.AverageFrames(); got != 200 {
		t.Errorf("AverageFrames() = %v, want 200", got)
	}

	ran := false
	if elapsed := b.Block(0, func() { ran = true }); elapsed < 0 || !ran {
		t.Error("Block() did not run the function")
	}
	if m, _ := b.Measurement(BlockSection); m.Count != 3 {
		t.Errorf("Count = %d, want 3", m.Count)
	}

	if report := b.AudioReport(); !strings.Contains(report, "load=") {
		t.Errorf("AudioReport missing load:\n%s", report)
	}

	b.Reset()
	if b.Load() != 0 || b.AverageFrames() != 0 {
		t.Error("Reset() kept block totals")
	}
}
