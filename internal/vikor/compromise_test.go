package vikor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCompromise(t *testing.T) {
	tests := []struct {
		name       string
		ranking    []ScoredAlternative
		dq         float64
		c1, c2     bool
		conclusion Conclusion
		set        []string
	}{
		{
			name: "two alternatives never clear DQ of one",
			ranking: []ScoredAlternative{
				{Code: "A1", Q: 0.10, S: 0.2, R: 0.1},
				{Code: "A2", Q: 0.60, S: 0.4, R: 0.2},
			},
			dq: 1, c1: false, c2: true,
			conclusion: ConclusionExtended,
			set:        []string{"A1", "A2"},
		},
		{
			name: "clear winner",
			ranking: []ScoredAlternative{
				{Code: "A1", Q: 0, S: 0.1, R: 0.05},
				{Code: "A2", Q: 0.6, S: 0.3, R: 0.1},
				{Code: "A3", Q: 1, S: 0.5, R: 0.2},
			},
			dq: 0.5, c1: true, c2: true,
			conclusion: ConclusionSingle,
			set:        []string{"A1"},
		},
		{
			name: "advantage without stability",
			ranking: []ScoredAlternative{
				{Code: "A1", Q: 0, S: 0.3, R: 0.2},
				{Code: "A2", Q: 0.6, S: 0.1, R: 0.1},
				{Code: "A3", Q: 1, S: 0.5, R: 0.3},
			},
			dq: 0.5, c1: true, c2: false,
			conclusion: ConclusionDouble,
			set:        []string{"A1", "A2"},
		},
		{
			name: "extended set stops at DQ",
			ranking: []ScoredAlternative{
				{Code: "A1", Q: 0, S: 0.1, R: 0.1},
				{Code: "A2", Q: 0.1, S: 0.2, R: 0.1},
				{Code: "A3", Q: 0.2, S: 0.3, R: 0.2},
				{Code: "A4", Q: 0.5, S: 0.4, R: 0.2},
				{Code: "A5", Q: 1, S: 0.5, R: 0.3},
			},
			dq: 0.25, c1: false, c2: true,
			conclusion: ConclusionExtended,
			set:        []string{"A1", "A2", "A3"},
		},
		{
			name: "advantage exactly at DQ is accepted",
			ranking: []ScoredAlternative{
				{Code: "A1", Q: 0, S: 0, R: 0},
				{Code: "A2", Q: 0.5, S: 0.1, R: 0.1},
				{Code: "A3", Q: 1, S: 0.2, R: 0.2},
			},
			dq: 0.5, c1: true, c2: true,
			conclusion: ConclusionSingle,
			set:        []string{"A1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := ValidateCompromise(tt.ranking)
			assert.Equal(t, len(tt.ranking), cv.N)
			assert.Equal(t, tt.dq, cv.DQ)
			assert.Equal(t, tt.c1, cv.Advantage.Satisfied, "acceptable advantage")
			assert.Equal(t, tt.c2, cv.Stability.Satisfied, "acceptable stability")
			assert.Equal(t, tt.conclusion, cv.Conclusion)
			assert.Equal(t, tt.set, cv.CompromiseSet)
			assert.Equal(t, tt.c1 && tt.c2, cv.Valid())
			assert.NotEmpty(t, cv.Summary)
			assert.NotEmpty(t, cv.Advantage.Detail)
		})
	}
}

func TestValidateCompromiseTrivial(t *testing.T) {
	cv := ValidateCompromise(nil)
	assert.Equal(t, 0, cv.N)
	assert.Empty(t, cv.CompromiseSet)

	cv = ValidateCompromise([]ScoredAlternative{{Code: "A1", Name: "only"}})
	assert.Equal(t, ConclusionSingle, cv.Conclusion)
	assert.Equal(t, []string{"A1"}, cv.CompromiseSet)
	assert.True(t, cv.Valid())
}

func TestValidateCompromiseDoesNotReorder(t *testing.T) {
	ranking := []ScoredAlternative{
		{Code: "A1", Q: 0.1, S: 0.2, R: 0.1},
		{Code: "A2", Q: 0.2, S: 0.1, R: 0.05},
	}
	before := append([]ScoredAlternative(nil), ranking...)
	_ = ValidateCompromise(ranking)
	assert.Equal(t, before, ranking)
}

func TestValidateCompromiseOnSample(t *testing.T) {
	s, err := Score(Individual{Name: "Siti Nurhaliza", C1: 90, C2: 85, C4: 88, C5: 90}, sampleAlternatives(), DefaultWeights(), DefaultV)
	require.NoError(t, err)
	cv := ValidateCompromise(s.Ranking)
	assert.Equal(t, 0.25, cv.DQ)
	assert.True(t, cv.Advantage.Satisfied)
	assert.True(t, cv.Stability.Satisfied)
	assert.Equal(t, ConclusionSingle, cv.Conclusion)
	assert.Equal(t, []string{"A5"}, cv.CompromiseSet)
}
