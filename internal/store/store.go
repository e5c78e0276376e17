package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

type RunSource string

const (
	SourceAPI    RunSource = "api"
	SourceSheets RunSource = "sheets"
	SourceCLI    RunSource = "cli"
	SourceEvents RunSource = "events"
)

// Run is one persisted placement computation.
type Run struct {
	ID        uuid.UUID `json:"run_id"`
	Source    RunSource `json:"source"`
	CreatedAt time.Time `json:"created_at"`

	// Counts, duplicated from Result for listing without decoding it.
	TotalIndividuals  int `json:"total_individuals"`
	QualifiedCount    int `json:"qualified_count"`
	DisqualifiedCount int `json:"disqualified_count"`
	AlternativeCount  int `json:"alternative_count"`
	DisplacedCount    int `json:"displaced_count"`

	Request json.RawMessage `json:"request,omitempty"`
	Result  *vikor.Result   `json:"result,omitempty"`
}

// NewRun stamps a fresh ID and copies the counts out of res.
func NewRun(source RunSource, request json.RawMessage, res *vikor.Result) *Run {
	r := &Run{
		ID:        uuid.New(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Request:   request,
		Result:    res,
	}
	if res != nil {
		r.TotalIndividuals = res.Metadata.TotalIndividuals
		r.QualifiedCount = res.Metadata.QualifiedCount
		r.DisqualifiedCount = res.Metadata.DisqualifiedCount
		r.AlternativeCount = res.Metadata.AlternativeCount
		r.DisplacedCount = res.Metadata.DisplacedCount
	}
	return r
}

type RunFilter struct {
	Source RunSource
	Since  *time.Time
	Limit  int
	Offset int
}

const DefaultListLimit = 50

// Store persists runs. GetRun returns nil, nil when no run has the given ID.
// ListRuns returns newest first and leaves Request and Result unset.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
	Close() error
}
