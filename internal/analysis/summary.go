package analysis

import "github.com/matsen/collab/internal/network"

// Summary describes the overall shape of a network.
type Summary struct {
	Nodes                int     `json:"nodes"`
	Edges                int     `json:"edges"`
	Density              float64 `json:"density"`
	Components           int     `json:"components"`
	LargestComponentSize int     `json:"largest_component_size"`
	MaximalCliques       int     `json:"maximal_cliques"`
	LargestCliqueSize    int     `json:"largest_clique_size"`
}

// Summarize computes a Summary for g.
func Summarize(g *network.Graph) Summary {
	s := Summary{
		Nodes: g.Len(),
		Edges: g.EdgeCount(),
	}
	if n := g.Len(); n > 1 {
		s.Density = 2 * float64(g.EdgeCount()) / float64(n*(n-1))
	}

	comps := ConnectedComponents(g)
	s.Components = len(comps)
	if len(comps) > 0 {
		s.LargestComponentSize = len(comps[0])
	}

	cliques := MaximalCliques(g)
	s.MaximalCliques = len(cliques)
	if len(cliques) > 0 {
		s.LargestCliqueSize = len(cliques[0])
	}
	return s
}
