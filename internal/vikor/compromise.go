package vikor

import "fmt"

// Conclusion classifies the compromise solution set.
type Conclusion string

const (
	ConclusionSingle   Conclusion = "single"
	ConclusionDouble   Conclusion = "double"
	ConclusionExtended Conclusion = "extended"
)

// ConditionCheck is the traceable outcome of one acceptance condition.
type ConditionCheck struct {
	Name      string  `json:"name"`
	Formula   string  `json:"formula"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold,omitempty"`
	Satisfied bool    `json:"satisfied"`
	Detail    string  `json:"detail"`
}

// CompromiseValidation is the result of applying VIKOR's two acceptance
// conditions to a ranking. It never alters the ranking itself.
type CompromiseValidation struct {
	N             int            `json:"n"`
	DQ            float64        `json:"dq"`
	Advantage     ConditionCheck `json:"acceptable_advantage"`
	Stability     ConditionCheck `json:"acceptable_stability"`
	CompromiseSet []string       `json:"compromise_set"`
	Conclusion    Conclusion     `json:"conclusion"`
	Summary       string         `json:"summary"`
}

// Valid reports whether both acceptance conditions hold.
func (c CompromiseValidation) Valid() bool {
	return c.Advantage.Satisfied && c.Stability.Satisfied
}

// ValidateCompromise checks acceptable advantage (C1) and acceptable stability
// (C2) for a ranking sorted by ascending Q and derives the compromise set.
func ValidateCompromise(ranking []ScoredAlternative) CompromiseValidation {
	n := len(ranking)
	if n == 0 {
		return CompromiseValidation{}
	}
	first := ranking[0]

	if n < 2 {
		return CompromiseValidation{
			N:             n,
			Advantage:     ConditionCheck{Name: "acceptable advantage", Satisfied: true, Detail: "only one alternative"},
			Stability:     ConditionCheck{Name: "acceptable stability", Satisfied: true, Detail: "only one alternative"},
			CompromiseSet: []string{first.Code},
			Conclusion:    ConclusionSingle,
			Summary:       fmt.Sprintf("%s adalah satu-satunya alternatif", first.Name),
		}
	}

	second := ranking[1]
	dq := round4(1 / float64(n-1))
	advantage := round4(second.Q - first.Q)

	c1 := ConditionCheck{
		Name:      "acceptable advantage",
		Formula:   "Q(a2) - Q(a1) >= DQ, DQ = 1/(n-1)",
		Value:     advantage,
		Threshold: dq,
		Satisfied: advantage >= dq,
		Detail: fmt.Sprintf("Q(%s) - Q(%s) = %s - %s = %s, DQ = 1/(%d-1) = %s",
			second.Code, first.Code, formatNumber(second.Q), formatNumber(first.Q),
			formatNumber(advantage), n, formatNumber(dq)),
	}

	minS, minR := first.S, first.R
	for _, alt := range ranking[1:] {
		minS = min(minS, alt.S)
		minR = min(minR, alt.R)
	}
	bestS, bestR := first.S <= minS, first.R <= minR
	c2 := ConditionCheck{
		Name:      "acceptable stability",
		Formula:   "a1 also ranks best by S or by R",
		Value:     first.Q,
		Satisfied: bestS || bestR,
		Detail: fmt.Sprintf("S(%s) = %s (min %s), R(%s) = %s (min %s)",
			first.Code, formatNumber(first.S), formatNumber(minS),
			first.Code, formatNumber(first.R), formatNumber(minR)),
	}

	out := CompromiseValidation{N: n, DQ: dq, Advantage: c1, Stability: c2}
	switch {
	case c1.Satisfied && c2.Satisfied:
		out.CompromiseSet = []string{first.Code}
		out.Conclusion = ConclusionSingle
		out.Summary = fmt.Sprintf("%s adalah solusi kompromi tunggal", first.Name)
	case !c1.Satisfied:
		for _, alt := range ranking {
			if round4(alt.Q-first.Q) < dq {
				out.CompromiseSet = append(out.CompromiseSet, alt.Code)
			}
		}
		out.Conclusion = ConclusionExtended
		out.Summary = fmt.Sprintf("keunggulan %s tidak cukup, solusi kompromi mencakup %d alternatif",
			first.Name, len(out.CompromiseSet))
	default:
		out.CompromiseSet = []string{first.Code, second.Code}
		out.Conclusion = ConclusionDouble
		out.Summary = fmt.Sprintf("%s dan %s adalah solusi kompromi", first.Name, second.Name)
	}
	return out
}
