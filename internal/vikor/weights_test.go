package vikor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	require.NoError(t, w.Validate())
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
}

func TestNewWeightVector(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		wantErr bool
	}{
		{"default", []float64{0.3, 0.2, 0.1, 0.25, 0.15}, false},
		{"within tolerance high", []float64{0.3, 0.2, 0.1, 0.25, 0.159}, false},
		{"within tolerance low", []float64{0.3, 0.2, 0.1, 0.25, 0.141}, false},
		{"equal", []float64{0.2, 0.2, 0.2, 0.2, 0.2}, false},
		{"sum too high", []float64{0.3, 0.2, 0.1, 0.25, 0.2}, true},
		{"sum too low", []float64{0.1, 0.1, 0.1, 0.1, 0.1}, true},
		{"four weights", []float64{0.25, 0.25, 0.25, 0.25}, true},
		{"six weights", []float64{0.2, 0.2, 0.2, 0.2, 0.1, 0.1}, true},
		{"negative", []float64{0.5, 0.3, -0.1, 0.2, 0.1}, true},
		{"empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeightVector(tt.weights)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidWeights), "expected ErrInvalidWeights, got %v", err)
		})
	}
}

func TestPriorityWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultPriorityWeights().Validate())
	assert.Error(t, PriorityWeights{C1: 0.5, C2: 0.5, C4: 0.5}.Validate())
	assert.Error(t, PriorityWeights{C1: 1.2, C2: -0.2}.Validate())
}

func TestPriorityScore(t *testing.T) {
	w := PriorityWeights{C1: 0.4, C2: 0.2, C4: 0.3, C5: 0.1}
	got := w.PriorityScore(Individual{C1: 90, C2: 80, C4: 70, C5: 60})
	assert.InDelta(t, 36+16+21+6, got, 1e-9)
}
