package state

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
)

func TestStoreWriteRead(t *testing.T) {
	s := NewStore()

	if got := s.Read(); got != 0.5 {
		t.Fatalf("initial Read() = %v, want 0.5", got)
	}

	values := []float64{0, 0.1, 0.25, 0.5, 0.999, 1, 1.5, -3, math.NaN()}
	for _, v := range values {
		s.Write(v)
		want := v
		switch {
		case math.IsNaN(v) || v < 0:
			want = 0
		case v > 1:
			want = 1
		}
		if got := s.Read(); got != want {
			t.Errorf("Write(%v): Read() = %v, want %v", v, got, want)
		}
		if got := s.Gain(); got != want*2 {
			t.Errorf("Write(%v): Gain() = %v, want %v", v, got, want*2)
		}
	}
}

func TestStoreClampsAboveRange(t *testing.T) {
	s := NewStore()
	s.Write(1.5)

	if got := s.Read(); got != 1.0 {
		t.Errorf("Read() = %v, want 1.0", got)
	}
	if got := s.Gain(); got != 2.0 {
		t.Errorf("Gain() = %v, want 2.0", got)
	}
}

func TestStoreIdempotentWrite(t *testing.T) {
	s := NewStore()
	s.Write(0.7)
	_, token := s.HasChangedSince(0)

	s.Write(0.7)
	if got := s.Read(); got != 0.7 {
		t.Errorf("Read() = %v after repeated write, want 0.7", got)
	}
	if changed, _ := s.HasChangedSince(token); changed {
		t.Error("repeated identical write reported as a change")
	}
}

func TestStoreChangeToken(t *testing.T) {
	s := NewStore()
	before := s.Revision()

	s.Write(0.3)

	changed, token := s.HasChangedSince(before)
	if !changed {
		t.Fatal("expected change with the pre-write token")
	}
	if token == before {
		t.Fatal("expected a new token")
	}

	changed, again := s.HasChangedSince(token)
	if changed {
		t.Error("expected no change with the fresh token")
	}
	if again != token {
		t.Errorf("token moved without a write: %d -> %d", token, again)
	}
}

func TestStoreDisplayText(t *testing.T) {
	s := NewStore()

	tests := []struct {
		value float64
		want  string
	}{
		{0, "0.00"},
		{0.5, "1.00"},
		{0.625, "1.25"},
		{1, "2.00"},
	}

	for _, tt := range tests {
		s.Write(tt.value)
		if got := s.DisplayText(); got != tt.want {
			t.Errorf("DisplayText() at %v = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestStoreNoTearing(t *testing.T) {
	s := NewStore()
	s.Write(0)

	const iterations = 200000
	var stop atomic.Bool
	var wg sync.WaitGroup

	writer := func(first, second float64) {
		defer wg.Done()
		for i := 0; !stop.Load(); i++ {
			if i%2 == 0 {
				s.Write(first)
			} else {
				s.Write(second)
			}
		}
	}

	wg.Add(2)
	go writer(0, 1)
	go writer(1, 0)

	bad := 0
	for i := 0; i < iterations; i++ {
		v := s.Read()
		if v != 0 && v != 1 {
			bad++
		}
	}
	stop.Store(true)
	wg.Wait()

	if bad > 0 {
		t.Errorf("observed %d reads that were neither 0.0 nor 1.0", bad)
	}
}

func TestStoreConcurrentRevisionMonotonic(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				s.Write(float64((i+seed)%100) / 100)
			}
		}(w)
	}

	last := s.Revision()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		select {
		case <-done:
			if s.Revision() < last {
				t.Fatal("revision went backwards")
			}
			return
		default:
			_, r := s.HasChangedSince(last)
			if r < last {
				t.Fatalf("revision went backwards: %d -> %d", last, r)
			}
			last = r
		}
	}
}

func BenchmarkStoreRead(b *testing.B) {
	s := NewStore()
	b.ReportAllocs()
	var sink float64
	for i := 0; i < b.N; i++ {
		sink += s.Read()
	}
	_ = sink
}
