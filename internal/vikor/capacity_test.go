package vikor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func tiedRanking(alts []Alternative) []ScoredAlternative {
	out := make([]ScoredAlternative, len(alts))
	for i, a := range alts {
		out[i] = ScoredAlternative{Code: a.Code, Name: a.Name, Rank: i + 1}
	}
	return out
}

func TestAllocateDisplacesByPriority(t *testing.T) {
	alts := []Alternative{
		{Code: "A1", Name: "Bank One", Capacity: intPtr(1)},
		{Code: "A2", Name: "Bank Two", Capacity: intPtr(1)},
		{Code: "A3", Name: "Bank Three"},
	}
	ranking := tiedRanking(alts)
	candidates := []Candidate{
		{Individual: Individual{Name: "low", C1: 76, C2: 70, C4: 80, C5: 70}, Ranking: ranking},
		{Individual: Individual{Name: "high", C1: 95, C2: 90, C4: 95, C5: 90}, Ranking: ranking},
		{Individual: Individual{Name: "mid", C1: 85, C2: 80, C4: 85, C5: 80}, Ranking: ranking},
	}

	allocs, tracker := Allocate(candidates, alts, DefaultPriorityWeights())
	require.Len(t, allocs, 3)

	byName := make(map[string]Allocation)
	for _, a := range allocs {
		byName[a.Name] = a
	}

	high := byName["high"]
	assert.Equal(t, 1, high.Order)
	assert.Equal(t, "A1", high.Assigned.Code)
	assert.False(t, high.Displaced)
	assert.Empty(t, high.Reason)

	mid := byName["mid"]
	assert.Equal(t, 2, mid.Order)
	assert.Equal(t, "A2", mid.Assigned.Code)
	assert.True(t, mid.Displaced)
	assert.Contains(t, mid.Reason, "penuh")
	assert.Equal(t, "A1", mid.TopChoice.Code)

	low := byName["low"]
	assert.Equal(t, 3, low.Order)
	assert.Equal(t, "A3", low.Assigned.Code)
	assert.True(t, low.Displaced)
	assert.Contains(t, low.Reason, "penuh")

	// Allocations come back in candidate order.
	assert.Equal(t, "low", allocs[0].Name)
	assert.Equal(t, "high", allocs[1].Name)

	assert.Equal(t, 0, tracker.Remaining("A1"))
	assert.Equal(t, 0, tracker.Remaining("A2"))
	assert.Equal(t, 1, tracker.Used("A3"))
}

func TestAllocateTwoSingleSeatAlternativesThreeCandidates(t *testing.T) {
	alts := []Alternative{
		{Code: "A1", Name: "Bank One", Capacity: intPtr(1)},
		{Code: "A2", Name: "Bank Two", Capacity: intPtr(1)},
	}
	ranking := tiedRanking(alts)
	candidates := []Candidate{
		{Individual: Individual{Name: "low", C1: 76, C2: 70, C4: 80, C5: 70}, Ranking: ranking},
		{Individual: Individual{Name: "high", C1: 95, C2: 90, C4: 95, C5: 90}, Ranking: ranking},
		{Individual: Individual{Name: "mid", C1: 85, C2: 80, C4: 85, C5: 80}, Ranking: ranking},
	}

	allocs, tracker := Allocate(candidates, alts, DefaultPriorityWeights())
	require.Len(t, allocs, 3)
	byName := make(map[string]Allocation)
	for _, a := range allocs {
		byName[a.Name] = a
	}

	high := byName["high"]
	assert.Equal(t, "A1", high.Assigned.Code)
	assert.False(t, high.Displaced)
	assert.False(t, high.OverCapacity)

	mid := byName["mid"]
	assert.Equal(t, "A2", mid.Assigned.Code)
	assert.True(t, mid.Displaced)
	assert.False(t, mid.OverCapacity)
	assert.Contains(t, mid.Reason, "Bank One (A1) penuh")

	// Nothing has room left, so the last candidate keeps rank 1 over capacity.
	low := byName["low"]
	assert.Equal(t, 3, low.Order)
	assert.Equal(t, "A1", low.Assigned.Code)
	assert.True(t, low.OverCapacity)
	assert.False(t, low.Displaced)
	assert.Contains(t, low.Reason, "penuh")

	assert.Equal(t, 2, tracker.Used("A1"))
	assert.Equal(t, 1, tracker.Used("A2"))
	usage := tracker.Utilization()
	assert.True(t, usage[0].OverCapacity)
	assert.Equal(t, 200.0, usage[0].Percentage)
	assert.False(t, usage[1].OverCapacity)
}

func TestAllocateOverCapacity(t *testing.T) {
	alts := []Alternative{
		{Code: "A1", Name: "Bank One", Capacity: intPtr(1)},
		{Code: "A2", Name: "Bank Two", Capacity: intPtr(0)},
	}
	ranking := tiedRanking(alts)
	candidates := []Candidate{
		{Individual: Individual{Name: "first", C1: 90, C4: 90}, Ranking: ranking},
		{Individual: Individual{Name: "second", C1: 80, C4: 80}, Ranking: ranking},
	}

	allocs, tracker := Allocate(candidates, alts, DefaultPriorityWeights())
	assert.Equal(t, "A1", allocs[0].Assigned.Code)
	assert.False(t, allocs[0].OverCapacity)

	assert.Equal(t, "A1", allocs[1].Assigned.Code)
	assert.True(t, allocs[1].OverCapacity)
	assert.False(t, allocs[1].Displaced)
	assert.Contains(t, allocs[1].Reason, "penuh")

	usage := tracker.Utilization()
	require.Len(t, usage, 2)
	assert.Equal(t, 2, usage[0].Filled)
	assert.True(t, usage[0].OverCapacity)
	assert.Equal(t, 200.0, usage[0].Percentage)
	assert.Equal(t, 0, usage[1].Filled)
}

func TestAllocateStablePriorityTies(t *testing.T) {
	alts := []Alternative{{Code: "A1", Name: "Bank One", Capacity: intPtr(1)}, {Code: "A2", Name: "Bank Two"}}
	ranking := tiedRanking(alts)
	same := Individual{C1: 80, C2: 80, C4: 80, C5: 80}
	a, b := same, same
	a.Name, b.Name = "a", "b"

	allocs, _ := Allocate([]Candidate{{Individual: a, Ranking: ranking}, {Individual: b, Ranking: ranking}}, alts, DefaultPriorityWeights())
	assert.Equal(t, "A1", allocs[0].Assigned.Code)
	assert.Equal(t, "A2", allocs[1].Assigned.Code)
}

func TestAllocateConservesPlacements(t *testing.T) {
	sample := SampleData()
	alts := sample.Alternatives
	alts[0].Capacity = intPtr(1)
	alts[4].Capacity = intPtr(2)

	var candidates []Candidate
	for _, ind := range sample.Individuals {
		s, err := Score(ind, alts, sample.Weights, sample.V)
		require.NoError(t, err)
		candidates = append(candidates, Candidate{Individual: ind, Ranking: s.Ranking})
	}

	allocs, tracker := Allocate(candidates, alts, DefaultPriorityWeights())
	total := 0
	for _, u := range tracker.Utilization() {
		total += u.Filled
		if !u.Unlimited {
			assert.LessOrEqual(t, u.Filled, u.Total, u.Code)
		}
	}
	assert.Equal(t, len(candidates), total)

	for _, a := range allocs {
		assert.NotEmpty(t, a.Assigned.Code, a.Name)
		if a.Displaced {
			assert.Greater(t, a.Assigned.Rank, 1)
		}
	}
}

func TestCapacityUtilizationUnlimited(t *testing.T) {
	tracker := NewCapacityTracker([]Alternative{{Code: "A1", Name: "x"}})
	assert.Equal(t, UnlimitedCapacity, tracker.Remaining("A1"))
	assert.Equal(t, 0, tracker.Remaining("missing"))

	usage := tracker.Utilization()
	require.Len(t, usage, 1)
	assert.True(t, usage[0].Unlimited)
	assert.Zero(t, usage[0].Total)
}
