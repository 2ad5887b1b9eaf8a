package migration

import "sort"

// Sort returns a new slice of scripts sorted by Name in lexicographic (byte)
// order. "10_index" sorts before "2_add_col"; names are expected to be
// zero-padded when numeric order matters.
func Sort(scripts []Script) []Script {
	sorted := make([]Script, len(scripts))
	copy(sorted, scripts)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	return sorted
}

// Pending returns the discovered scripts whose names are not in applied,
// sorted with Sort.
func Pending(discovered []Script, applied map[string]struct{}) []Script {
	pending := make([]Script, 0, len(discovered))

	for _, s := range discovered {
		if _, ok := applied[s.Name]; ok {
			continue
		}

		pending = append(pending, s)
	}

	return Sort(pending)
}
