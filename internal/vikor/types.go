package vikor

import "strings"

// AlternativeID is the stable identifier used to look up per-individual data
// (distances) for an alternative.
type AlternativeID string

// KeyFunc derives the lookup identifier of an alternative. Distance maps coming
// from spreadsheets are keyed by alternative name, so NameKey is the default.
type KeyFunc func(Alternative) AlternativeID

// NameKey identifies an alternative by its exact name.
func NameKey(a Alternative) AlternativeID { return AlternativeID(a.Name) }

// CodeKey identifies an alternative by its code.
func CodeKey(a Alternative) AlternativeID { return AlternativeID(a.Code) }

// FoldedNameKey identifies an alternative by its trimmed, case-folded name.
func FoldedNameKey(a Alternative) AlternativeID {
	return AlternativeID(strings.ToLower(strings.TrimSpace(a.Name)))
}

// Individual is one candidate to be placed. C1 and C4 are gated by the
// eligibility thresholds; C2 and C5 only contribute as benefit criteria.
type Individual struct {
	Name string  `json:"name" validate:"required"`
	C1   float64 `json:"c1" validate:"gte=0,lte=100"`
	C2   float64 `json:"c2" validate:"gte=0,lte=100"`
	C4   float64 `json:"c4" validate:"gte=0,lte=100"`
	C5   float64 `json:"c5" validate:"gte=0,lte=100"`

	// Distances overrides the alternative's base distance for this individual.
	Distances map[AlternativeID]float64 `json:"distances,omitempty" validate:"omitempty,dive,gte=0,finite"`
}

// Alternative is a placement target. A nil Capacity means unconstrained.
type Alternative struct {
	Code     string  `json:"code" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Distance float64 `json:"distance" validate:"gte=0,finite"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
}

// Thresholds are the minimum C1 and C4 scores an individual needs to qualify.
type Thresholds struct {
	C1 float64 `json:"c1" yaml:"c1" validate:"gte=0,lte=100"`
	C4 float64 `json:"c4" yaml:"c4" validate:"gte=0,lte=100"`
}

// DefaultThresholds returns the thresholds used when none are configured.
func DefaultThresholds() Thresholds {
	return Thresholds{C1: 75, C4: 80}
}

// DefaultV is the consensus strategy weight between group utility and regret.
const DefaultV = 0.5

// Input bundles everything one run consumes.
type Input struct {
	Individuals  []Individual
	Alternatives []Alternative
	Weights      WeightVector
	V            float64

	// DistanceOverrides maps individual name to per-alternative distances.
	// Entries on Individual.Distances take precedence.
	DistanceOverrides map[string]map[AlternativeID]float64

	// Thresholds replaces the engine's configured thresholds when set.
	Thresholds *Thresholds
}
