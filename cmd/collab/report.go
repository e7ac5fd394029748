package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/network"
	"github.com/matsen/collab/internal/recommend"
	"github.com/matsen/collab/internal/viz"
)

var reportDir string

func init() {
	reportCmd.Flags().StringVar(&reportDir, "dir", "report", "Directory for the plot files")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the whole case study",
	Long: `Run every case-study step in order and write each plot into --dir:

  degree.html       degree centrality histogram
  betweenness.html  betweenness centrality histogram
  component.html    largest connected component, matrix grouped by grouping
  arc.html          arc plot ordered by degree
  circos.html       circos plot ordered by degree, grouped by grouping
  clique.html       circos plot of the largest maximal clique
  community.html    editing community arc plot ordered by degree centrality
  index.html        every chart on one page

The clique count, prolific collaborators and recommended pairs are printed.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

// ReportResult is the response for the report command.
type ReportResult struct {
	Summary         analysis.Summary           `json:"summary"`
	Cliques         int                        `json:"cliques"`
	LargestClique   []string                   `json:"largest_clique"`
	Prolific        []string                   `json:"prolific"`
	Community       []string                   `json:"community"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Plots           []string                   `json:"plots"`
}

type reportPlotFile struct {
	name  string
	chart viz.Chart
}

func runReport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	g := mustLoadGraph(repoRoot)

	if err := os.MkdirAll(reportDir, 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", reportDir, err)
	}

	result, plots, err := buildReport(g, cfg.HistogramBins, cfg.TopPairs)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	all := make([]viz.Chart, 0, len(plots))
	for _, p := range plots {
		path := filepath.Join(reportDir, p.name)
		if err := writePlot(path, p.chart); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		result.Plots = append(result.Plots, path)
		all = append(all, p.chart)
	}
	index := filepath.Join(reportDir, "index.html")
	if err := writePlot(index, all...); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	result.Plots = append(result.Plots, index)
	slog.Debug("wrote report", "dir", reportDir, "plots", len(result.Plots))

	if !humanOutput {
		outputJSON(result)
		return nil
	}

	fmt.Printf("Network: %d nodes, %d edges, %d components\n",
		result.Summary.Nodes, result.Summary.Edges, result.Summary.Components)
	fmt.Printf("Maximal cliques: %d\n", result.Cliques)
	fmt.Printf("Largest clique: %s\n", formatIDList(result.LargestClique))
	fmt.Printf("Prolific collaborators: %s\n", formatIDList(result.Prolific))
	fmt.Printf("Editing community: %d nodes\n", len(result.Community))
	fmt.Println("Recommended co-editors:")
	printRecommendationsHuman(result.Recommendations)
	fmt.Printf("Plots written to %s\n", reportDir)
	return nil
}

// buildReport runs the case study in order and returns the results and the
// charts to write.
func buildReport(g *network.Graph, bins, top int) (ReportResult, []reportPlotFile, error) {
	var result ReportResult
	snap := analysis.NewSnapshot(g)
	result.Summary = analysis.Summarize(g)

	degree, err := analysis.NewHistogram(analysis.Values(analysis.DegreeCentrality(g)), bins)
	if err != nil {
		return result, nil, err
	}
	betweenness, err := analysis.NewHistogram(analysis.Values(analysis.BetweennessCentrality(g)), bins)
	if err != nil {
		return result, nil, err
	}

	largest, err := analysis.LargestComponent(g)
	if err != nil {
		return result, nil, err
	}

	result.Cliques = len(analysis.MaximalCliques(g))
	clique, err := analysis.LargestCliqueGraph(g)
	if err != nil {
		return result, nil, err
	}
	result.LargestClique = clique.IDs()

	result.Prolific = analysis.ProlificCollaborators(g)

	community, err := analysis.EditingCommunity(g)
	if err != nil {
		return result, nil, err
	}
	result.Community = community.IDs()

	result.Recommendations, err = recommend.Select(recommend.Count(g), top)
	if err != nil {
		return result, nil, err
	}

	plots := []reportPlotFile{
		{"degree.html", viz.HistogramChart("Degree centrality", degree)},
		{"betweenness.html", viz.HistogramChart("Betweenness centrality", betweenness)},
		{"component.html", viz.MatrixChart("Largest connected component", largest, analysis.NewSnapshot(largest))},
		{"arc.html", viz.ArcChart("Collaboration network", g, snap, analysis.OrderDegree)},
		{"circos.html", viz.CircosChart("Collaboration network", g, snap, analysis.OrderDegree, true)},
		{"clique.html", viz.CircosChart("Largest maximal clique", clique, analysis.NewSnapshot(clique), analysis.OrderDegree, true)},
		{"community.html", viz.ArcChart("Editing community", community, analysis.NewSnapshot(community), analysis.OrderDegreeCentrality)},
	}
	return result, plots, nil
}
