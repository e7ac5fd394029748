// Package analysis computes centrality, component, clique and collaborator
// queries over a collaboration network.
package analysis

import (
	"errors"
	"sort"

	gnetwork "gonum.org/v1/gonum/graph/network"

	"github.com/matsen/collab/internal/network"
)

// ErrEmptyGraph is returned by queries that need at least one node.
var ErrEmptyGraph = errors.New("graph has no nodes")

// DegreeCentrality returns degree/(n-1) for every node.
// A graph with at most one node maps every node to 1.
func DegreeCentrality(g *network.Graph) map[string]float64 {
	out := make(map[string]float64, g.Len())
	n := g.Len()
	if n <= 1 {
		for _, id := range g.IDs() {
			out[id] = 1
		}
		return out
	}

	scale := 1 / float64(n-1)
	for _, id := range g.IDs() {
		out[id] = float64(g.Degree(id)) * scale
	}
	return out
}

// BetweennessCentrality returns normalized betweenness for every node.
//
// gonum sums over ordered (s, t) pairs, so for an undirected graph the raw
// score counts each pair twice; dividing by (n-1)(n-2) yields the fraction
// of unordered pairs whose shortest paths pass through the node.
func BetweennessCentrality(g *network.Graph) map[string]float64 {
	out := make(map[string]float64, g.Len())
	for _, id := range g.IDs() {
		out[id] = 0
	}

	n := g.Len()
	if n <= 2 {
		return out
	}

	scale := 1 / float64((n-1)*(n-2))
	for i, raw := range gnetwork.Betweenness(g.Undirected()) {
		out[g.IDAt(i)] = raw * scale
	}
	return out
}

// ProlificCollaborators returns every node whose degree centrality equals the
// maximum observed value, sorted by ID. Ties are all included.
func ProlificCollaborators(g *network.Graph) []string {
	if g.IsEmpty() {
		return nil
	}

	// Compare on integer degree so float rounding cannot split a tie.
	maxDegree := -1
	var out []string
	for _, id := range g.IDs() {
		d := g.Degree(id)
		switch {
		case d > maxDegree:
			maxDegree = d
			out = []string{id}
		case d == maxDegree:
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Values returns the values of a centrality map ordered by node ID.
func Values(scores map[string]float64) []float64 {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = scores[id]
	}
	return out
}
