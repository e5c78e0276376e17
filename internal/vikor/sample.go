package vikor

// Sample is the demonstration data set served to new users.
type Sample struct {
	Individuals  []Individual    `json:"individuals"`
	Alternatives []Alternative   `json:"alternatives"`
	Weights      WeightVector    `json:"weights"`
	Criteria     []CriterionSpec `json:"criteria"`
	Thresholds   Thresholds      `json:"thresholds"`
	V            float64         `json:"v"`
}

// SampleData returns eight students and five bank branches. Eko Prasetyo is
// below every threshold.
func SampleData() Sample {
	return Sample{
		Individuals: []Individual{
			{Name: "Ahmad Rizki", C1: 85, C2: 80, C4: 78, C5: 82},
			{Name: "Siti Nurhaliza", C1: 90, C2: 85, C4: 88, C5: 90},
			{Name: "Budi Santoso", C1: 75, C2: 78, C4: 72, C5: 75},
			{Name: "Dewi Lestari", C1: 82, C2: 88, C4: 80, C5: 85},
			{Name: "Eko Prasetyo", C1: 65, C2: 70, C4: 68, C5: 72},
			{Name: "Fajar Ramadhan", C1: 88, C2: 82, C4: 85, C5: 80},
			{Name: "Gita Pertiwi", C1: 78, C2: 75, C4: 76, C5: 78},
			{Name: "Hendra Wijaya", C1: 92, C2: 90, C4: 95, C5: 88},
		},
		Alternatives: []Alternative{
			{Code: "A1", Name: "Bank BJB Syariah KC Jakarta (Soepomo)", Distance: 5.2},
			{Code: "A2", Name: "Bank Jakarta KCP Matraman", Distance: 3.8},
			{Code: "A3", Name: "Bank BRI KCP Saharjo", Distance: 4.5},
			{Code: "A4", Name: "Bank Mandiri KCP Jatinegara", Distance: 6.1},
			{Code: "A5", Name: "Bank BNI KCP Tebet", Distance: 2.9},
		},
		Weights:    DefaultWeights(),
		Criteria:   Criteria(),
		Thresholds: DefaultThresholds(),
		V:          DefaultV,
	}
}
