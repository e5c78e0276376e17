package hermes

import "time"

type RunCompletedEvent struct {
	RunID             string    `json:"run_id"`
	Source            string    `json:"source"`
	TotalIndividuals  int       `json:"total_individuals"`
	QualifiedCount    int       `json:"qualified_count"`
	DisqualifiedCount int       `json:"disqualified_count"`
	AlternativeCount  int       `json:"alternative_count"`
	DisplacedCount    int       `json:"displaced_count"`
	OverCapacityCount int       `json:"over_capacity_count"`
	DurationMs        int64     `json:"duration_ms"`
	Timestamp         time.Time `json:"timestamp"`
}

type RunFailedEvent struct {
	Source    string    `json:"source"`
	Error     string    `json:"error"`
	Problems  []string  `json:"problems,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
