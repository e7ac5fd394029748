package viz

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/network"
)

// Chart is a go-echarts chart that can be rendered alone or on a Page.
type Chart interface {
	components.Charter
	Render(w io.Writer) error
}

// arcSpacing is the horizontal distance between nodes on an arc plot.
const arcSpacing = 20

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     "1200px",
		Height:    "800px",
	})
}

// nodeSize scales a node symbol by degree.
func nodeSize(degree int) float32 {
	return float32(6 + 3*math.Sqrt(float64(degree)))
}

// HistogramChart builds a bar chart of a histogram.
func HistogramChart(title string, h analysis.Histogram) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d nodes", h.Total),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "nodes"}),
	)

	data := make([]opts.BarData, len(h.Counts))
	for i, c := range h.Counts {
		data[i] = opts.BarData{Value: c}
	}
	bar.SetXAxis(h.Labels()).AddSeries("nodes", data)
	return bar
}

// MatrixChart builds an adjacency-matrix heatmap with rows and columns
// ordered by grouping and then by ID.
func MatrixChart(title string, g *network.Graph, snap analysis.Snapshot) *charts.HeatMap {
	ordered := snap.OrderBy(analysis.OrderGrouping)
	labels := make([]string, ordered.Len())
	for i, st := range ordered.Stats() {
		labels[i] = st.ID
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d nodes grouped by grouping", ordered.Len()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(false),
			Min:        0,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#ffffff", "#34495E"}},
		}),
	)

	data := make([]opts.HeatMapData, 0, 2*g.EdgeCount())
	for _, p := range g.Edges() {
		a, b := ordered.Position(p.A), ordered.Position(p.B)
		data = append(data,
			opts.HeatMapData{Value: [3]interface{}{a, b, 1}},
			opts.HeatMapData{Value: [3]interface{}{b, a, 1}},
		)
	}
	hm.SetXAxis(labels).AddSeries("adjacency", data)
	return hm
}

// ArcChart places nodes on a line in snapshot order by key and draws every
// edge as an arc.
func ArcChart(title string, g *network.Graph, snap analysis.Snapshot, key analysis.OrderKey) *charts.Graph {
	ordered := snap.OrderBy(key)
	cats, catIdx := categories(ordered)

	nodes := make([]opts.GraphNode, 0, ordered.Len())
	for i, st := range ordered.Stats() {
		nodes = append(nodes, opts.GraphNode{
			Name:       st.ID,
			X:          float32(i * arcSpacing),
			Y:          0,
			Value:      float32(st.Degree),
			Category:   catIdx[st.Grouping],
			SymbolSize: nodeSize(st.Degree),
		})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("ordered by %s", key),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	graph.AddSeries("arc", nodes, links(g),
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:     "none",
			Roam:       opts.Bool(true),
			Categories: cats,
		}),
		charts.WithLineStyleOpts(opts.LineStyle{Curveness: 0.5, Opacity: 0.6}),
	)
	return graph
}

// CircosChart places nodes on a circle and colours them by grouping. When
// grouped is set nodes are ordered by grouping and then by key; otherwise by
// key alone.
func CircosChart(title string, g *network.Graph, snap analysis.Snapshot, key analysis.OrderKey, grouped bool) *charts.Graph {
	ordered := snap.OrderBy(key)
	if grouped {
		ordered = snap.GroupBy(key)
	}
	cats, catIdx := categories(ordered)

	nodes := make([]opts.GraphNode, 0, ordered.Len())
	for _, st := range ordered.Stats() {
		nodes = append(nodes, opts.GraphNode{
			Name:       st.ID,
			Value:      float32(st.Degree),
			Category:   catIdx[st.Grouping],
			SymbolSize: nodeSize(st.Degree),
		})
	}

	subtitle := fmt.Sprintf("ordered by %s", key)
	if grouped {
		subtitle = fmt.Sprintf("grouped by grouping, ordered by %s", key)
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	graph.AddSeries("circos", nodes, links(g),
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:     "circular",
			Roam:       opts.Bool(true),
			Categories: cats,
		}),
		charts.WithLineStyleOpts(opts.LineStyle{Curveness: 0.3, Opacity: 0.5}),
	)
	return graph
}

func links(g *network.Graph) []opts.GraphLink {
	out := make([]opts.GraphLink, 0, g.EdgeCount())
	for _, p := range g.Edges() {
		out = append(out, opts.GraphLink{Source: p.A, Target: p.B})
	}
	return out
}

// categories builds one legend category per grouping.
func categories(snap analysis.Snapshot) ([]*opts.GraphCategory, map[string]int) {
	groupings := snap.Groupings()
	cats := make([]*opts.GraphCategory, len(groupings))
	for i, g := range groupings {
		cats[i] = &opts.GraphCategory{Name: groupName(g)}
	}
	return cats, groupIndex(groupings)
}

// RenderPage renders several charts onto one HTML page.
func RenderPage(w io.Writer, cs ...Chart) error {
	if len(cs) == 1 {
		return cs[0].Render(w)
	}

	page := components.NewPage()
	for _, c := range cs {
		page.AddCharts(c)
	}
	return page.Render(w)
}
