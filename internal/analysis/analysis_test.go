package analysis

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/matsen/collab/internal/network"
)

func buildGraph(t *testing.T, ids []string, pairs [][2]string) *network.Graph {
	t.Helper()
	nodes := make([]network.Node, len(ids))
	for i, id := range ids {
		nodes[i] = network.Node{ID: id}
	}
	edges := make([]network.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = network.Edge{SourceID: p[0], TargetID: p[1]}
	}
	g, err := network.Build(nodes, edges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func star(t *testing.T) *network.Graph {
	return buildGraph(t, []string{"c", "l1", "l2", "l3"}, [][2]string{
		{"c", "l1"}, {"c", "l2"}, {"c", "l3"},
	})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDegreeCentrality(t *testing.T) {
	dc := DegreeCentrality(star(t))
	if !approx(dc["c"], 1) {
		t.Errorf("center centrality = %v, want 1", dc["c"])
	}
	for _, leaf := range []string{"l1", "l2", "l3"} {
		if !approx(dc[leaf], 1.0/3) {
			t.Errorf("%s centrality = %v, want 1/3", leaf, dc[leaf])
		}
	}
}

func TestDegreeCentrality_SingleNode(t *testing.T) {
	dc := DegreeCentrality(buildGraph(t, []string{"solo"}, nil))
	if dc["solo"] != 1 {
		t.Errorf("single node centrality = %v, want 1", dc["solo"])
	}
}

func TestBetweennessCentrality(t *testing.T) {
	tests := []struct {
		name string
		g    *network.Graph
		want map[string]float64
	}{
		{
			name: "star",
			g:    star(t),
			want: map[string]float64{"c": 1, "l1": 0, "l2": 0, "l3": 0},
		},
		{
			name: "path of four",
			g:    buildGraph(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}),
			// b lies on a-c and a-d: 2 of 3 pairs not involving b.
			want: map[string]float64{"a": 0, "b": 2.0 / 3, "c": 2.0 / 3, "d": 0},
		},
		{
			name: "two nodes",
			g:    buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}}),
			want: map[string]float64{"a": 0, "b": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BetweennessCentrality(tt.g)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d scores, want %d", len(got), len(tt.want))
			}
			for id, want := range tt.want {
				if !approx(got[id], want) {
					t.Errorf("betweenness[%s] = %v, want %v", id, got[id], want)
				}
			}
		})
	}
}

func TestConnectedComponents_TieBreak(t *testing.T) {
	g := buildGraph(t, []string{"x", "y", "a", "b", "solo"}, [][2]string{{"x", "y"}, {"a", "b"}})

	comps := ConnectedComponents(g)
	want := [][]string{{"a", "b"}, {"x", "y"}, {"solo"}}
	if !reflect.DeepEqual(comps, want) {
		t.Errorf("ConnectedComponents() = %v, want %v", comps, want)
	}

	largest, err := LargestComponent(g)
	if err != nil {
		t.Fatalf("LargestComponent() error = %v", err)
	}
	if got := largest.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("LargestComponent() = %v", got)
	}
}

func TestLargestComponent_Empty(t *testing.T) {
	_, err := LargestComponent(buildGraph(t, nil, nil))
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("error = %v, want ErrEmptyGraph", err)
	}
}

func TestMaximalCliques(t *testing.T) {
	// Two triangles sharing node c, plus an isolated node.
	g := buildGraph(t, []string{"a", "b", "c", "d", "e", "z"}, [][2]string{
		{"a", "b"}, {"b", "c"}, {"a", "c"},
		{"c", "d"}, {"d", "e"}, {"c", "e"},
	})

	cliques := MaximalCliques(g)
	want := [][]string{{"a", "b", "c"}, {"c", "d", "e"}, {"z"}}
	if !reflect.DeepEqual(cliques, want) {
		t.Errorf("MaximalCliques() = %v, want %v", cliques, want)
	}

	largest, err := LargestClique(g)
	if err != nil {
		t.Fatalf("LargestClique() error = %v", err)
	}
	if !reflect.DeepEqual(largest, []string{"a", "b", "c"}) {
		t.Errorf("LargestClique() = %v, want lowest member sequence", largest)
	}
}

func TestLargestClique_Empty(t *testing.T) {
	if _, err := LargestClique(buildGraph(t, nil, nil)); !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("error = %v, want ErrEmptyGraph", err)
	}
}

func TestEditingCommunity(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d", "e", "far"}, [][2]string{
		{"a", "b"}, {"b", "c"}, {"a", "c"},
		{"c", "d"}, {"d", "e"}, {"e", "far"},
	})

	community, err := EditingCommunity(g)
	if err != nil {
		t.Fatalf("EditingCommunity() error = %v", err)
	}
	if got := community.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("EditingCommunity() nodes = %v", got)
	}
	if community.EdgeCount() != 4 {
		t.Errorf("EditingCommunity() edges = %d, want 4", community.EdgeCount())
	}
}

func TestProlificCollaborators(t *testing.T) {
	tests := []struct {
		name string
		g    *network.Graph
		want []string
	}{
		{"star", star(t), []string{"c"}},
		{"ties", buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}}), []string{"a", "b", "c"}},
		{"empty", buildGraph(t, nil, nil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProlificCollaborators(tt.g)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ProlificCollaborators() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(star(t))
	if s.Nodes != 4 || s.Edges != 3 {
		t.Errorf("Summarize nodes/edges = %d/%d", s.Nodes, s.Edges)
	}
	if !approx(s.Density, 0.5) {
		t.Errorf("Density = %v, want 0.5", s.Density)
	}
	if s.Components != 1 || s.LargestComponentSize != 4 {
		t.Errorf("components = %d (largest %d)", s.Components, s.LargestComponentSize)
	}
	if s.MaximalCliques != 3 || s.LargestCliqueSize != 2 {
		t.Errorf("cliques = %d (largest %d)", s.MaximalCliques, s.LargestCliqueSize)
	}
}
