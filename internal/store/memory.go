package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps the most recent runs in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	runs    map[uuid.UUID]*Run
	order   []uuid.UUID
	maxRuns int
}

// NewMemoryStore keeps at most maxRuns runs, evicting the oldest. Zero or less
// means unbounded.
func NewMemoryStore(maxRuns int) *MemoryStore {
	return &MemoryStore{runs: make(map[uuid.UUID]*Run), maxRuns: maxRuns}
}

func (s *MemoryStore) SaveRun(_ context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; !exists {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run

	for s.maxRuns > 0 && len(s.order) > s.maxRuns {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id uuid.UUID) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[id], nil
}

func (s *MemoryStore) ListRuns(_ context.Context, filter RunFilter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var out []*Run
	skipped := 0
	for _, id := range slices.Backward(s.order) {
		r := s.runs[id]
		if filter.Source != "" && r.Source != filter.Source {
			continue
		}
		if filter.Since != nil && r.CreatedAt.Before(*filter.Since) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		summary := *r
		summary.Request = nil
		summary.Result = nil
		out = append(out, &summary)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
