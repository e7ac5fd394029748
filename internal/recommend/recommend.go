// Package recommend suggests co-editors who share collaborators but have
// never worked together, by counting open triangles.
package recommend

import (
	"errors"
	"sort"

	"github.com/matsen/collab/internal/network"
)

// DefaultTop is the default number of pairs to select.
const DefaultTop = 10

// ErrInvalidTopN is returned when the selection size is below one.
var ErrInvalidTopN = errors.New("top must be at least 1")

// Counts maps an unconnected pair to the number of shared neighbours.
type Counts map[network.Pair]int

// Recommendation is a suggested pair and its open-triangle count.
type Recommendation struct {
	Pair  network.Pair `json:"pair"`
	Count int          `json:"count"`
}

// Count visits every node and, for each unordered pair of its neighbours
// with no direct edge, increments that pair's counter by one.
func Count(g *network.Graph) Counts {
	counts := make(Counts)
	for _, id := range g.IDs() {
		nbrs := g.Neighbors(id)
		for i := 0; i < len(nbrs); i++ {
			for j := i + 1; j < len(nbrs); j++ {
				if g.HasEdge(nbrs[i], nbrs[j]) {
					continue
				}
				counts[network.NewPair(nbrs[i], nbrs[j])]++
			}
		}
	}
	return counts
}

// Ranked returns every pair ordered by count descending, then by pair.
func Ranked(counts Counts) []Recommendation {
	out := make([]Recommendation, 0, len(counts))
	for p, c := range counts {
		out = append(out, Recommendation{Pair: p, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Pair.Less(out[j].Pair)
	})
	return out
}

// Threshold returns the n-th largest count (duplicates included) and whether
// one exists. With fewer than n pairs there is no threshold.
func Threshold(counts Counts, n int) (int, bool) {
	if n < 1 || len(counts) < n {
		return 0, false
	}
	values := make([]int, 0, len(counts))
	for _, c := range counts {
		values = append(values, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values[n-1], true
}

// Select returns every pair whose count is strictly greater than the n-th
// largest count. Ties at the threshold are all excluded and ties above it
// are all included, so the result may hold fewer or more than n pairs.
// When fewer than n pairs exist every pair is returned.
func Select(counts Counts, n int) ([]Recommendation, error) {
	if n < 1 {
		return nil, ErrInvalidTopN
	}

	ranked := Ranked(counts)
	threshold, ok := Threshold(counts, n)
	if !ok {
		return ranked, nil
	}

	out := make([]Recommendation, 0, n)
	for _, r := range ranked {
		if r.Count <= threshold {
			break
		}
		out = append(out, r)
	}
	return out, nil
}

// SelectInclusive is like Select but keeps pairs tied with the n-th largest
// count, so ties at the threshold can yield more than n pairs.
func SelectInclusive(counts Counts, n int) ([]Recommendation, error) {
	if n < 1 {
		return nil, ErrInvalidTopN
	}

	ranked := Ranked(counts)
	threshold, ok := Threshold(counts, n)
	if !ok {
		return ranked, nil
	}

	out := make([]Recommendation, 0, n)
	for _, r := range ranked {
		if r.Count < threshold {
			break
		}
		out = append(out, r)
	}
	return out, nil
}
