package vikor

// Direction tells whether higher or lower raw values are preferred.
type Direction string

const (
	Benefit Direction = "Benefit"
	Cost    Direction = "Cost"
)

// Criterion indexes into a decision-matrix row and a WeightVector.
type Criterion int

const (
	CriterionGrades Criterion = iota
	CriterionAttitude
	CriterionDistance
	CriterionCertification
	CriterionRecommendation

	NumCriteria = 5
)

// CriterionSpec describes one column of the decision matrix.
type CriterionSpec struct {
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	Direction Direction `json:"direction"`
}

// criteria is fixed: C3 (distance) is the only cost criterion.
var criteria = [NumCriteria]CriterionSpec{
	{Code: "C1", Label: "Akumulasi Nilai", Direction: Benefit},
	{Code: "C2", Label: "Penilaian Sikap", Direction: Benefit},
	{Code: "C3", Label: "Jarak", Direction: Cost},
	{Code: "C4", Label: "Nilai Sertifikasi", Direction: Benefit},
	{Code: "C5", Label: "Rekomendasi Guru", Direction: Benefit},
}

// Criteria returns the criterion table in matrix column order.
func Criteria() []CriterionSpec {
	out := make([]CriterionSpec, NumCriteria)
	copy(out, criteria[:])
	return out
}

// Spec returns the descriptor of c.
func (c Criterion) Spec() CriterionSpec { return criteria[c] }

// IsBenefit reports whether higher values of c are better.
func (c Criterion) IsBenefit() bool { return criteria[c].Direction == Benefit }
