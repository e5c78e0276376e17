package vikor

import (
	"fmt"
	"math"
)

// Profile is the individual's criterion scores as shown in reports.
type Profile struct {
	Name string  `json:"name"`
	C1   float64 `json:"c1"`
	C2   float64 `json:"c2"`
	C4   float64 `json:"c4"`
	C5   float64 `json:"c5"`
}

// IndividualResult is everything computed for one qualified individual.
type IndividualResult struct {
	Individual     Profile              `json:"individual"`
	Ranking        []ScoredAlternative  `json:"ranking"`
	Recommendation ScoredAlternative    `json:"recommendation"`
	Allocation     Allocation           `json:"allocation"`
	Narrative      string               `json:"narrative"`
	Compromise     CompromiseValidation `json:"compromise"`
	Details        CalculationDetails   `json:"calculation_details"`
}

// RunMetadata describes the parameters and counts of one run.
type RunMetadata struct {
	TotalIndividuals    int             `json:"total_individuals"`
	QualifiedCount      int             `json:"qualified_count"`
	DisqualifiedCount   int             `json:"disqualified_count"`
	AlternativeCount    int             `json:"alternative_count"`
	Weights             WeightVector    `json:"weights"`
	Thresholds          Thresholds      `json:"thresholds"`
	V                   float64         `json:"v"`
	PriorityWeights     PriorityWeights `json:"priority_weights"`
	DisplacedCount      int             `json:"displaced_count"`
	OverCapacityCount   int             `json:"over_capacity_count"`
	CapacityUtilization []CapacityUsage `json:"capacity_utilization"`
}

// WeightRow is one line of the weight table in a summary.
type WeightRow struct {
	Code       string    `json:"code"`
	Label      string    `json:"label"`
	Direction  Direction `json:"direction"`
	Weight     float64   `json:"weight"`
	Percentage string    `json:"percentage"`
}

// Summary is the at-a-glance view of a run.
type Summary struct {
	TotalIndividuals           int            `json:"total_individuals"`
	QualifiedCount             int            `json:"qualified_count"`
	DisqualifiedCount          int            `json:"disqualified_count"`
	RecommendationDistribution map[string]int `json:"recommendation_distribution"`
	AllocationDistribution     map[string]int `json:"allocation_distribution"`
	Weights                    []WeightRow    `json:"weights"`
	Thresholds                 Thresholds     `json:"thresholds"`
	V                          float64        `json:"v"`
}

// Result is the complete output of a run.
type Result struct {
	Qualified    []IndividualResult `json:"qualified"`
	Disqualified []Disqualified     `json:"disqualified"`
	Capacity     []CapacityUsage    `json:"capacity"`
	Metadata     RunMetadata        `json:"metadata"`
	Summary      Summary            `json:"summary"`
}

// ScoredIndividual pairs a qualified individual with their VIKOR evaluation.
type ScoredIndividual struct {
	Individual Individual
	Scoring    *Scoring
	Compromise CompromiseValidation
}

// AssembleParams carries every intermediate product Assemble aggregates.
type AssembleParams struct {
	Input           Input
	Thresholds      Thresholds
	PriorityWeights PriorityWeights
	Scored          []ScoredIndividual
	Disqualified    []Disqualified
	Allocations     []Allocation
	Tracker         *CapacityTracker
}

// Assemble aggregates the outputs of the pipeline stages into a Result. It
// performs no further computation on scores.
func Assemble(p AssembleParams) *Result {
	res := &Result{
		Qualified:    make([]IndividualResult, 0, len(p.Scored)),
		Disqualified: p.Disqualified,
		Capacity:     p.Tracker.Utilization(),
	}
	if res.Disqualified == nil {
		res.Disqualified = []Disqualified{}
	}

	meta := RunMetadata{
		TotalIndividuals:  len(p.Input.Individuals),
		QualifiedCount:    len(p.Scored),
		DisqualifiedCount: len(res.Disqualified),
		AlternativeCount:  len(p.Input.Alternatives),
		Weights:           p.Input.Weights,
		Thresholds:        p.Thresholds,
		V:                 p.Input.V,
		PriorityWeights:   p.PriorityWeights,
	}

	recDist := make(map[string]int)
	allocDist := make(map[string]int)
	for i, si := range p.Scored {
		alloc := p.Allocations[i]
		best := si.Scoring.Best()
		recDist[best.Name]++
		allocDist[alloc.Assigned.Name]++
		if alloc.Displaced {
			meta.DisplacedCount++
		}
		if alloc.OverCapacity {
			meta.OverCapacityCount++
		}
		res.Qualified = append(res.Qualified, IndividualResult{
			Individual:     profileOf(si.Individual),
			Ranking:        si.Scoring.Ranking,
			Recommendation: best,
			Allocation:     alloc,
			Narrative:      Narrative(si.Individual, si.Scoring.Ranking, alloc, si.Compromise),
			Compromise:     si.Compromise,
			Details:        si.Scoring.Details,
		})
	}
	meta.CapacityUtilization = res.Capacity
	res.Metadata = meta

	res.Summary = Summary{
		TotalIndividuals:           meta.TotalIndividuals,
		QualifiedCount:             meta.QualifiedCount,
		DisqualifiedCount:          meta.DisqualifiedCount,
		RecommendationDistribution: recDist,
		AllocationDistribution:     allocDist,
		Weights:                    weightTable(p.Input.Weights),
		Thresholds:                 p.Thresholds,
		V:                          p.Input.V,
	}
	return res
}

func profileOf(ind Individual) Profile {
	return Profile{Name: ind.Name, C1: ind.C1, C2: ind.C2, C4: ind.C4, C5: ind.C5}
}

func weightTable(w WeightVector) []WeightRow {
	rows := make([]WeightRow, NumCriteria)
	for i, spec := range criteria {
		rows[i] = WeightRow{
			Code:       spec.Code,
			Label:      spec.Label,
			Direction:  spec.Direction,
			Weight:     w[i],
			Percentage: fmt.Sprintf("%.0f%%", math.Round(w[i]*100)),
		}
	}
	return rows
}
