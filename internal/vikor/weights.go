package vikor

import (
	"fmt"
	"math"
)

// WeightTolerance is how far the weight sum may drift from 1.0.
const WeightTolerance = 0.01

// WeightVector holds one weight per criterion, in Criteria() order.
type WeightVector [NumCriteria]float64

// DefaultWeights returns the stock C1..C5 weight distribution.
func DefaultWeights() WeightVector {
	return WeightVector{0.30, 0.20, 0.10, 0.25, 0.15}
}

// NewWeightVector builds a WeightVector from a slice and validates it.
func NewWeightVector(ws []float64) (WeightVector, error) {
	var w WeightVector
	if len(ws) != NumCriteria {
		return w, &ValidationError{
			Kind:     ErrInvalidWeights,
			Problems: []string{fmt.Sprintf("expected exactly %d weights (C1-C5), got %d", NumCriteria, len(ws))},
		}
	}
	copy(w[:], ws)
	return w, w.Validate()
}

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightVector) Validate() error {
	var problems []string
	for i, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			problems = append(problems, fmt.Sprintf("weight %s is invalid: %v", criteria[i].Code, v))
		}
	}
	if sum := w.Sum(); math.IsNaN(sum) || math.Abs(sum-1.0) > WeightTolerance {
		problems = append(problems, fmt.Sprintf("weights sum to %.4f, must sum to 1.0", sum))
	}
	if len(problems) > 0 {
		return &ValidationError{Kind: ErrInvalidWeights, Problems: problems}
	}
	return nil
}

// Slice returns the weights as a slice.
func (w WeightVector) Slice() []float64 {
	out := make([]float64, NumCriteria)
	copy(out, w[:])
	return out
}
