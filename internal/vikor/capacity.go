package vikor

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// UnlimitedCapacity stands in for alternatives that declare no capacity.
const UnlimitedCapacity = math.MaxInt32

type capacitySlot struct {
	code      string
	name      string
	total     int
	used      int
	unlimited bool
}

func (s *capacitySlot) remaining() int {
	return max(s.total-s.used, 0)
}

// CapacityTracker counts placements per alternative during one allocation pass.
// Used only ever increases.
type CapacityTracker struct {
	slots map[string]*capacitySlot
	order []string
}

// NewCapacityTracker starts a tracker from each alternative's declared capacity.
func NewCapacityTracker(alts []Alternative) *CapacityTracker {
	t := &CapacityTracker{slots: make(map[string]*capacitySlot, len(alts))}
	for _, alt := range alts {
		slot := &capacitySlot{code: alt.Code, name: alt.Name, total: UnlimitedCapacity, unlimited: true}
		if alt.Capacity != nil {
			slot.total = *alt.Capacity
			slot.unlimited = false
		}
		t.slots[alt.Code] = slot
		t.order = append(t.order, alt.Code)
	}
	return t
}

// Remaining returns the free places left at the alternative with code.
func (t *CapacityTracker) Remaining(code string) int {
	if slot, ok := t.slots[code]; ok {
		return slot.remaining()
	}
	return 0
}

// Used returns the number of placements made at the alternative with code.
func (t *CapacityTracker) Used(code string) int {
	if slot, ok := t.slots[code]; ok {
		return slot.used
	}
	return 0
}

func (t *CapacityTracker) take(code string) {
	if slot, ok := t.slots[code]; ok {
		slot.used++
	}
}

// CapacityUsage summarises how full one alternative ended up.
type CapacityUsage struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Filled       int     `json:"filled"`
	Total        int     `json:"total,omitempty"`
	Remaining    int     `json:"remaining,omitempty"`
	Percentage   float64 `json:"percentage"`
	Unlimited    bool    `json:"unlimited"`
	OverCapacity bool    `json:"over_capacity"`
}

// Utilization reports every alternative in input order.
func (t *CapacityTracker) Utilization() []CapacityUsage {
	out := make([]CapacityUsage, 0, len(t.order))
	for _, code := range t.order {
		slot := t.slots[code]
		usage := CapacityUsage{Code: slot.code, Name: slot.name, Filled: slot.used, Unlimited: slot.unlimited}
		if !slot.unlimited {
			usage.Total = slot.total
			usage.Remaining = slot.remaining()
			usage.OverCapacity = slot.used > slot.total
			if slot.total > 0 {
				usage.Percentage = math.Round(float64(slot.used)/float64(slot.total)*10000) / 100
			}
		}
		out = append(out, usage)
	}
	return out
}

// Candidate is a qualified individual together with their personal ranking.
type Candidate struct {
	Individual Individual
	Ranking    []ScoredAlternative
}

// Allocation is where one individual actually ended up.
type Allocation struct {
	Name         string            `json:"name"`
	Priority     float64           `json:"priority_score"`
	Order        int               `json:"allocation_order"`
	Assigned     ScoredAlternative `json:"assigned"`
	TopChoice    ScoredAlternative `json:"top_choice"`
	Displaced    bool              `json:"displaced"`
	OverCapacity bool              `json:"over_capacity"`
	Reason       string            `json:"reason,omitempty"`
}

// Allocate places every candidate at exactly one alternative. Candidates are
// processed by descending priority score; each takes the best-ranked
// alternative with room left. When nothing has room the candidate is placed at
// their rank-1 alternative anyway and flagged as over capacity.
//
// Allocations are returned in candidate order.
func Allocate(candidates []Candidate, alts []Alternative, pw PriorityWeights) ([]Allocation, *CapacityTracker) {
	tracker := NewCapacityTracker(alts)
	allocations := make([]Allocation, len(candidates))

	order := make([]int, len(candidates))
	for i := range candidates {
		order[i] = i
		allocations[i].Name = candidates[i].Individual.Name
		allocations[i].Priority = pw.PriorityScore(candidates[i].Individual)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(allocations[b].Priority, allocations[a].Priority)
	})

	for pos, idx := range order {
		cand := candidates[idx]
		alloc := &allocations[idx]
		alloc.Order = pos + 1
		if len(cand.Ranking) == 0 {
			continue
		}
		top := cand.Ranking[0]
		alloc.TopChoice = top

		placed := false
		for _, alt := range cand.Ranking {
			if tracker.Remaining(alt.Code) > 0 {
				alloc.Assigned = alt
				placed = true
				break
			}
		}
		if !placed {
			alloc.Assigned = top
			alloc.OverCapacity = true
			alloc.Reason = fmt.Sprintf("semua alternatif penuh, %s (%s) melebihi kapasitas", top.Name, top.Code)
		}
		tracker.take(alloc.Assigned.Code)

		if alloc.Assigned.Code != top.Code {
			alloc.Displaced = true
			alloc.Reason = fmt.Sprintf("%s (%s) penuh, dialihkan ke %s (peringkat %d)",
				top.Name, top.Code, alloc.Assigned.Name, alloc.Assigned.Rank)
		}
	}

	return allocations, tracker
}
