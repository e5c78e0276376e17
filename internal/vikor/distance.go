package vikor

// ResolveDistances returns a copy of alts where each Distance is the one that
// applies to ind: the individual's own override, then the run-level override for
// the individual's name, then the alternative's base distance.
func ResolveDistances(ind Individual, alts []Alternative, overrides map[string]map[AlternativeID]float64, key KeyFunc) []Alternative {
	if key == nil {
		key = NameKey
	}
	shared := overrides[ind.Name]

	out := make([]Alternative, len(alts))
	for i, alt := range alts {
		resolved := alt
		id := key(alt)
		if d, ok := ind.Distances[id]; ok {
			resolved.Distance = d
		} else if d, ok := shared[id]; ok {
			resolved.Distance = d
		}
		out[i] = resolved
	}
	return out
}
