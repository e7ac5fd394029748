package analysis

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matsen/collab/internal/network"
)

// ConnectedComponents returns every connected component as a sorted ID list.
// Components are ordered by size descending, then by member sequence.
func ConnectedComponents(g *network.Graph) [][]string {
	return orderSets(g, topo.ConnectedComponents(g.Undirected()))
}

// LargestComponent returns the subgraph induced by the largest connected
// component. Ties go to the component with the lowest sorted member sequence.
func LargestComponent(g *network.Graph) (*network.Graph, error) {
	comps := ConnectedComponents(g)
	if len(comps) == 0 {
		return nil, ErrEmptyGraph
	}
	return g.Subgraph(comps[0])
}

// MaximalCliques enumerates every maximal clique with Bron-Kerbosch.
// Isolated nodes are singleton cliques. Ordered like ConnectedComponents.
func MaximalCliques(g *network.Graph) [][]string {
	if g.IsEmpty() {
		return nil
	}
	return orderSets(g, topo.BronKerbosch(g.Undirected()))
}

// LargestClique returns the members of the largest maximal clique.
// Ties go to the clique with the lowest sorted member sequence.
func LargestClique(g *network.Graph) ([]string, error) {
	cliques := MaximalCliques(g)
	if len(cliques) == 0 {
		return nil, ErrEmptyGraph
	}
	return cliques[0], nil
}

// LargestCliqueGraph returns the subgraph induced by LargestClique.
func LargestCliqueGraph(g *network.Graph) (*network.Graph, error) {
	members, err := LargestClique(g)
	if err != nil {
		return nil, err
	}
	return g.Subgraph(members)
}

// EditingCommunity returns the largest clique grown one hop outward.
func EditingCommunity(g *network.Graph) (*network.Graph, error) {
	members, err := LargestClique(g)
	if err != nil {
		return nil, err
	}
	return g.Expand(members)
}

func orderSets(g *network.Graph, sets [][]graph.Node) [][]string {
	out := make([][]string, len(sets))
	for i, s := range sets {
		out[i] = g.IDsOf(s)
	}
	sortSets(out)
	return out
}
