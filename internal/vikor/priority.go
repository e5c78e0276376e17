package vikor

import (
	"fmt"
	"math"
)

// PriorityWeights defines the fixed weight distribution used to order
// individuals for allocation. It is independent of the VIKOR weights.
type PriorityWeights struct {
	C1 float64 `json:"c1" yaml:"c1"`
	C2 float64 `json:"c2" yaml:"c2"`
	C4 float64 `json:"c4" yaml:"c4"`
	C5 float64 `json:"c5" yaml:"c5"`
}

// DefaultPriorityWeights favours the two threshold-gated scores.
func DefaultPriorityWeights() PriorityWeights {
	return PriorityWeights{C1: 0.40, C2: 0.20, C4: 0.30, C5: 0.10}
}

// Sum returns the total of all weights.
func (w PriorityWeights) Sum() float64 {
	return w.C1 + w.C2 + w.C4 + w.C5
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w PriorityWeights) Validate() error {
	if math.Abs(w.Sum()-1.0) > WeightTolerance {
		return fmt.Errorf("priority weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.C1, w.C2, w.C4, w.C5} {
		if v < 0 {
			return fmt.Errorf("negative priority weight: %f", v)
		}
	}
	return nil
}

// PriorityScore combines an individual's four scores into the value that
// decides allocation order. Higher is allocated first.
func (w PriorityWeights) PriorityScore(ind Individual) float64 {
	return round4(ind.C1*w.C1 + ind.C2*w.C2 + ind.C4*w.C4 + ind.C5*w.C5)
}
