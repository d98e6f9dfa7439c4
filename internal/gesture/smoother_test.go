package gesture

import (
	"math"
	"testing"
)

func TestSmoother_Add(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{name: "single sample", samples: []float64{0.4}, want: 0.4},
		{name: "two samples", samples: []float64{0.2, 0.5}, want: (0.2*0.6 + 0.5) / 1.6},
		{name: "three samples", samples: []float64{0.1, 0.2, 0.3}, want: (0.1*0.36 + 0.2*0.6 + 0.3) / 1.96},
		{name: "oldest evicted", samples: []float64{0.9, 0.1, 0.2, 0.3}, want: (0.1*0.36 + 0.2*0.6 + 0.3) / 1.96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSmoother(3, 0.6)
			var got float64
			for _, x := range tt.samples {
				got = s.Add(x)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Add() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSmoother_FIFO(t *testing.T) {
	s := NewSmoother(3, 0.6)
	for _, x := range []float64{1, 2, 3, 4, 5} {
		s.Add(x)
	}

	got := s.history
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("history len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestSmoother_NewestWeightedHighest(t *testing.T) {
	s := NewSmoother(3, 0.6)
	s.Add(0.0)
	s.Add(0.0)
	got := s.Add(1.0)

	// The newest sample dominates: 1 / (0.36 + 0.6 + 1).
	if got <= 0.5 {
		t.Errorf("Add() = %f, want newest sample to carry most weight", got)
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(3, 0.6)
	s.Add(0.3)
	s.Add(0.7)
	s.Reset()

	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
	if got := s.Add(0.5); got != 0.5 {
		t.Errorf("Add() after Reset = %f, want 0.5", got)
	}
}

func TestNewSmoother_MinimumCapacity(t *testing.T) {
	s := NewSmoother(0, 0.6)
	s.Add(0.1)
	s.Add(0.2)

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
