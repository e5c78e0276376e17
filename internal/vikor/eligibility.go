package vikor

import (
	"fmt"
	"strconv"
	"strings"
)

// Disqualified records an individual that failed at least one threshold.
type Disqualified struct {
	Name   string   `json:"name"`
	C1     float64  `json:"c1"`
	C2     float64  `json:"c2"`
	C4     float64  `json:"c4"`
	C5     float64  `json:"c5"`
	Failed []string `json:"failed_criteria"`
	Reason string   `json:"reason"`
}

// FilterEligible splits individuals into those meeting both thresholds and those
// that do not. Input order is preserved within each partition.
func FilterEligible(individuals []Individual, t Thresholds) (qualified []Individual, disqualified []Disqualified) {
	for _, ind := range individuals {
		var failed, reasons []string
		if ind.C1 < t.C1 {
			failed = append(failed, "C1")
			reasons = append(reasons, thresholdReason(CriterionGrades, ind.C1, t.C1))
		}
		if ind.C4 < t.C4 {
			failed = append(failed, "C4")
			reasons = append(reasons, thresholdReason(CriterionCertification, ind.C4, t.C4))
		}
		if len(failed) == 0 {
			qualified = append(qualified, ind)
			continue
		}
		disqualified = append(disqualified, Disqualified{
			Name:   ind.Name,
			C1:     ind.C1,
			C2:     ind.C2,
			C4:     ind.C4,
			C5:     ind.C5,
			Failed: failed,
			Reason: strings.Join(reasons, "; "),
		})
	}
	return qualified, disqualified
}

func thresholdReason(c Criterion, value, threshold float64) string {
	spec := c.Spec()
	return fmt.Sprintf("%s (%s = %s) di bawah batas minimum %s (kurang %s)",
		spec.Label, spec.Code, formatNumber(value), formatNumber(threshold), formatNumber(round4(threshold-value)))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
