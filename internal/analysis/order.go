package analysis

import "sort"

// sortSets orders sorted ID sets by size descending, then lexicographically.
func sortSets(sets [][]string) {
	sort.Slice(sets, func(i, j int) bool {
		if len(sets[i]) != len(sets[j]) {
			return len(sets[i]) > len(sets[j])
		}
		return lessSeq(sets[i], sets[j])
	})
}

func lessSeq(a, b []string) bool {
	for k := 0; k < len(a) && k < len(b); k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return len(a) < len(b)
}
