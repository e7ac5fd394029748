package network

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Build errors.
var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("edge references unknown node")
	ErrNodeNotFound  = errors.New("node not found")
)

// Graph is an immutable undirected simple graph keyed by string node IDs.
//
// Node IDs are mapped to dense gonum IDs in sorted order, so iteration over
// IDs, neighbours and edges is deterministic.
type Graph struct {
	nodes []Node // sorted by ID
	index map[string]int64
	adj   [][]int64 // sorted neighbour indexes
	edges int
	g     *simple.UndirectedGraph
}

// Build constructs a Graph. Duplicate edges collapse; edges must reference known nodes.
func Build(nodes []Node, edges []Edge) (*Graph, error) {
	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	index := make(map[string]int64, len(sorted))
	for i, n := range sorted {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, ok := index[n.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		index[n.ID] = int64(i)
	}

	g := simple.NewUndirectedGraph()
	for i := range sorted {
		g.AddNode(simple.Node(int64(i)))
	}

	adj := make([][]int64, len(sorted))
	count := 0
	for _, e := range DedupeEdges(edges) {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("edge %s: %w", e.Key(), err)
		}
		from, ok := index[e.SourceID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, e.SourceID)
		}
		to, ok := index[e.TargetID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, e.TargetID)
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		adj[from] = append(adj[from], to)
		adj[to] = append(adj[to], from)
		count++
	}
	for i := range adj {
		sort.Slice(adj[i], func(a, b int) bool { return adj[i][a] < adj[i][b] })
	}

	return &Graph{nodes: sorted, index: index, adj: adj, edges: count, g: g}, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.nodes) == 0
}

// Nodes returns a copy of all nodes in ID order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// IDs returns all node IDs in sorted order.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Neighbors returns the sorted neighbour IDs of id, or nil if id is unknown.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.nodes[j].ID
	}
	return out
}

// Degree returns the number of neighbours of id (0 for unknown nodes).
func (g *Graph) Degree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.adj[i])
}

// HasEdge reports whether a and b are directly connected.
func (g *Graph) HasEdge(a, b string) bool {
	i, ok := g.index[a]
	if !ok {
		return false
	}
	j, ok := g.index[b]
	if !ok {
		return false
	}
	return g.g.HasEdgeBetween(i, j)
}

// Edges returns every edge as a canonical pair, sorted.
func (g *Graph) Edges() []Pair {
	out := make([]Pair, 0, g.edges)
	for i, nbrs := range g.adj {
		for _, j := range nbrs {
			if int64(i) < j {
				out = append(out, NewPair(g.nodes[i].ID, g.nodes[j].ID))
			}
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Less(out[b]) })
	return out
}

// Subgraph returns the subgraph induced by ids. Unknown IDs are an error.
func (g *Graph) Subgraph(ids []string) (*Graph, error) {
	keep := make(map[string]bool, len(ids))
	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		if keep[id] {
			continue
		}
		n, ok := g.Node(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
		keep[id] = true
		nodes = append(nodes, n)
	}

	var edges []Edge
	for _, p := range g.Edges() {
		if keep[p.A] && keep[p.B] {
			edges = append(edges, Edge{SourceID: p.A, TargetID: p.B})
		}
	}
	return Build(nodes, edges)
}

// Expand returns the subgraph induced by ids, grown one hop: every neighbour of
// an id is added along with its edge to that id. Edges between two added
// neighbours are not included unless one of them is in ids.
func (g *Graph) Expand(ids []string) (*Graph, error) {
	core, err := g.Subgraph(ids)
	if err != nil {
		return nil, err
	}

	nodes := core.Nodes()
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}
	edges := make([]Edge, 0, core.EdgeCount())
	for _, p := range core.Edges() {
		edges = append(edges, Edge{SourceID: p.A, TargetID: p.B})
	}

	for _, id := range core.IDs() {
		for _, nbr := range g.Neighbors(id) {
			if !present[nbr] {
				n, _ := g.Node(nbr)
				nodes = append(nodes, n)
				present[nbr] = true
			}
			edges = append(edges, Edge{SourceID: id, TargetID: nbr})
		}
	}
	return Build(nodes, edges)
}

// Undirected exposes the graph to gonum algorithms. Node i of the returned
// graph corresponds to IDAt(i).
func (g *Graph) Undirected() graph.Undirected {
	return g.g
}

// IDAt maps a gonum node ID back to the string node ID.
func (g *Graph) IDAt(i int64) string {
	return g.nodes[i].ID
}

// IDsOf maps gonum nodes back to sorted string IDs.
func (g *Graph) IDsOf(nodes []graph.Node) []string {
	ids := make([]string, len(nodes))
	for k, n := range nodes {
		ids[k] = g.IDAt(n.ID())
	}
	sort.Strings(ids)
	return ids
}
