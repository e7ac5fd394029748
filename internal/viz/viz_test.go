package viz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/network"
)

func testGraph(t *testing.T) (*network.Graph, analysis.Snapshot) {
	t.Helper()
	nodes := []network.Node{
		{ID: "hub", Grouping: "1"},
		{ID: "alice", Grouping: "1"},
		{ID: "bob", Grouping: "2"},
		{ID: "carol"},
	}
	edges := []network.Edge{
		{SourceID: "hub", TargetID: "alice"},
		{SourceID: "hub", TargetID: "bob"},
		{SourceID: "hub", TargetID: "carol"},
	}
	g, err := network.Build(nodes, edges)
	if err != nil {
		t.Fatal(err)
	}
	return g, analysis.NewSnapshot(g)
}

func TestBuildNetworkData(t *testing.T) {
	g, snap := testGraph(t)
	data := BuildNetworkData(g, snap)

	if len(data.Nodes) != 4 || len(data.Edges) != 3 {
		t.Fatalf("got %d nodes and %d edges", len(data.Nodes), len(data.Edges))
	}

	colors := make(map[string]string)
	for _, n := range data.Nodes {
		if n.Color == "" {
			t.Errorf("node %s has no color", n.ID)
		}
		colors[n.Grouping] = n.Color
		if n.ID == "hub" && n.Degree != 3 {
			t.Errorf("hub degree = %d, want 3", n.Degree)
		}
	}
	if colors["1"] == colors["2"] {
		t.Error("different groupings should get different colors")
	}
}

func TestGenerateNetworkHTML(t *testing.T) {
	g, snap := testGraph(t)
	data := BuildNetworkData(g, snap)

	tests := []struct {
		layout  string
		want    string
		wantErr bool
	}{
		{"", `const layout = "cose"`, false},
		{"force", `const layout = "cose"`, false},
		{"circle", `const layout = "circle"`, false},
		{"grid", `const layout = "grid"`, false},
		{"spiral", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			html, err := GenerateNetworkHTML(data, HTMLOptions{Layout: tt.layout})
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for invalid layout")
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateNetworkHTML() error = %v", err)
			}
			if !strings.Contains(html, tt.want) {
				t.Errorf("HTML missing %q", tt.want)
			}
			if !strings.Contains(html, `"id":"alice"`) {
				t.Error("HTML missing node data")
			}
		})
	}
}

func TestGenerateNetworkHTML_Empty(t *testing.T) {
	html, err := GenerateNetworkHTML(&NetworkData{}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "No network data") {
		t.Error("empty network should render the empty state")
	}

	if _, err := GenerateNetworkHTML(nil, DefaultOptions()); err == nil {
		t.Error("expected error for nil data")
	}
}

func TestCharts_Render(t *testing.T) {
	g, snap := testGraph(t)
	h, err := analysis.NewHistogram(analysis.Values(analysis.DegreeCentrality(g)), analysis.DefaultBins)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		chart Chart
		want  []string
	}{
		{"histogram", HistogramChart("Degree centrality", h), []string{"Degree centrality"}},
		{"matrix", MatrixChart("Largest component", g, snap), []string{"heatmap", "alice"}},
		{"arc", ArcChart("Arc", g, snap, analysis.OrderDegree), []string{"ordered by degree", "carol"}},
		{"circos", CircosChart("Circos", g, snap, analysis.OrderDegree, true), []string{"circular", "(none)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.chart.Render(&buf); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("rendered %s missing %q", tt.name, w)
				}
			}
		})
	}
}

func TestRenderPage(t *testing.T) {
	g, snap := testGraph(t)
	var buf bytes.Buffer
	err := RenderPage(&buf,
		ArcChart("First", g, snap, analysis.OrderID),
		CircosChart("Second", g, snap, analysis.OrderDegree, false),
	)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if !strings.Contains(buf.String(), "First") || !strings.Contains(buf.String(), "Second") {
		t.Error("page should contain both charts")
	}
}
