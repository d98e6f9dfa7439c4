package gesture

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Smoother keeps a short FIFO of horizontal positions and returns their
// exponentially weighted mean, the newest sample weighted highest.
type Smoother struct {
	capacity int
	factor   float64
	history  []float64
	weights  []float64
}

// NewSmoother creates a Smoother retaining at most capacity samples.
func NewSmoother(capacity int, factor float64) *Smoother {
	if capacity < 1 {
		capacity = 1
	}
	return &Smoother{
		capacity: capacity,
		factor:   factor,
		history:  make([]float64, 0, capacity+1),
		weights:  make([]float64, 0, capacity),
	}
}

// Add records x, evicting the oldest sample when over capacity, and returns
// the smoothed position.
func (s *Smoother) Add(x float64) float64 {
	s.history = append(s.history, x)
	if len(s.history) > s.capacity {
		s.history = append(s.history[:0], s.history[1:]...)
	}

	n := len(s.history)
	s.weights = s.weights[:0]
	for i := 0; i < n; i++ {
		s.weights = append(s.weights, math.Pow(s.factor, float64(n-1-i)))
	}
	return stat.Mean(s.history, s.weights)
}

// Len returns the number of retained samples.
func (s *Smoother) Len() int {
	return len(s.history)
}

// Reset discards the history.
func (s *Smoother) Reset() {
	s.history = s.history[:0]
}
