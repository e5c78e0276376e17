package vikor

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// ScoredAlternative is one alternative's VIKOR outcome for one individual.
type ScoredAlternative struct {
	Code     string               `json:"code"`
	Name     string               `json:"name"`
	Distance float64              `json:"distance"`
	S        float64              `json:"s"`
	R        float64              `json:"r"`
	Q        float64              `json:"q"`
	Rank     int                  `json:"rank"`
	Criteria [NumCriteria]float64 `json:"criteria_values"`
}

// CalculationDetails exposes the reference points used for one individual.
type CalculationDetails struct {
	FBest    []float64       `json:"f_best"`
	FWorst   []float64       `json:"f_worst"`
	Criteria []CriterionSpec `json:"criteria"`
	SMin     float64         `json:"s_min"`
	SMax     float64         `json:"s_max"`
	RMin     float64         `json:"r_min"`
	RMax     float64         `json:"r_max"`
}

// Scoring is the VIKOR evaluation of every alternative for one individual.
type Scoring struct {
	// Ranking is sorted by ascending Q; Ranking[0] is the recommendation.
	Ranking []ScoredAlternative `json:"ranking"`
	Details CalculationDetails  `json:"calculation_details"`
}

// Best returns the rank-1 alternative.
func (s *Scoring) Best() ScoredAlternative { return s.Ranking[0] }

// Score evaluates alts (already distance-resolved for ind) with the VIKOR
// method and ranks them. v weighs group utility (S) against individual
// regret (R).
func Score(ind Individual, alts []Alternative, w WeightVector, v float64) (*Scoring, error) {
	if len(alts) == 0 {
		return nil, fmt.Errorf("score %q: %w", ind.Name, ErrNoAlternatives)
	}

	matrix := make([][NumCriteria]float64, len(alts))
	for i, alt := range alts {
		matrix[i] = [NumCriteria]float64{ind.C1, ind.C2, alt.Distance, ind.C4, ind.C5}
	}

	var fBest, fWorst [NumCriteria]float64
	for j := 0; j < NumCriteria; j++ {
		lo, hi := matrix[0][j], matrix[0][j]
		for i := 1; i < len(matrix); i++ {
			lo = math.Min(lo, matrix[i][j])
			hi = math.Max(hi, matrix[i][j])
		}
		if Criterion(j).IsBenefit() {
			fBest[j], fWorst[j] = hi, lo
		} else {
			fBest[j], fWorst[j] = lo, hi
		}
	}

	sValues := make([]float64, len(alts))
	rValues := make([]float64, len(alts))
	for i, row := range matrix {
		var s, r float64
		for j := 0; j < NumCriteria; j++ {
			weighted := w[j] * normalizedRegret(Criterion(j), row[j], fBest[j], fWorst[j])
			s += weighted
			r = math.Max(r, weighted)
		}
		sValues[i] = s
		rValues[i] = r
	}

	sMin, sMax := slices.Min(sValues), slices.Max(sValues)
	rMin, rMax := slices.Min(rValues), slices.Max(rValues)
	sDenom, rDenom := sMax-sMin, rMax-rMin

	ranking := make([]ScoredAlternative, len(alts))
	for i, alt := range alts {
		var q float64
		if sDenom != 0 {
			q += v * (sValues[i] - sMin) / sDenom
		}
		if rDenom != 0 {
			q += (1 - v) * (rValues[i] - rMin) / rDenom
		}
		ranking[i] = ScoredAlternative{
			Code:     alt.Code,
			Name:     alt.Name,
			Distance: alt.Distance,
			S:        round4(sValues[i]),
			R:        round4(rValues[i]),
			Q:        round4(q),
			Criteria: matrix[i],
		}
	}

	// Stable so that equal Q keeps input order.
	slices.SortStableFunc(ranking, func(a, b ScoredAlternative) int {
		return cmp.Compare(a.Q, b.Q)
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}

	return &Scoring{
		Ranking: ranking,
		Details: CalculationDetails{
			FBest:    roundAll(fBest[:]),
			FWorst:   roundAll(fWorst[:]),
			Criteria: Criteria(),
			SMin:     round4(sMin),
			SMax:     round4(sMax),
			RMin:     round4(rMin),
			RMax:     round4(rMax),
		},
	}, nil
}

// normalizedRegret is the distance of value from the best reference point as a
// fraction of the best-to-worst span. A zero span yields 0.
func normalizedRegret(c Criterion, value, best, worst float64) float64 {
	if best == worst {
		return 0
	}
	if c.IsBenefit() {
		return (best - value) / (best - worst)
	}
	return (value - best) / (worst - best)
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func roundAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = round4(v)
	}
	return out
}
