package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/network"
	"github.com/matsen/collab/internal/viz"
)

var (
	centralityBins int
	centralityPlot string
	centralityTop  int
)

func init() {
	centralityCmd.PersistentFlags().IntVar(&centralityBins, "bins", 0, "Histogram bins (default: histogram_bins from config)")
	centralityCmd.PersistentFlags().StringVar(&centralityPlot, "plot", "", "Write a histogram plot to this HTML file")
	centralityCmd.PersistentFlags().IntVar(&centralityTop, "top", 5, "Number of highest-scoring nodes to list")
	centralityCmd.AddCommand(degreeCmd, betweennessCmd)
	rootCmd.AddCommand(centralityCmd)
}

var centralityCmd = &cobra.Command{
	Use:   "centrality",
	Short: "Centrality distributions",
}

var degreeCmd = &cobra.Command{
	Use:   "degree",
	Short: "Degree centrality distribution",
	Long: `Compute degree centrality (neighbours / (n-1)) for every node and bin the
values into a histogram.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCentrality("degree", analysis.DegreeCentrality)
	},
}

var betweennessCmd = &cobra.Command{
	Use:   "betweenness",
	Short: "Betweenness centrality distribution",
	Long: `Compute normalized betweenness centrality for every node and bin the values
into a histogram.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCentrality("betweenness", analysis.BetweennessCentrality)
	},
}

// NodeScore is one node's centrality value.
type NodeScore struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// CentralityResult is the response for the centrality commands.
type CentralityResult struct {
	Measure   string             `json:"measure"`
	Histogram analysis.Histogram `json:"histogram"`
	Top       []NodeScore        `json:"top"`
	Plot      string             `json:"plot,omitempty"`
}

func runCentrality(measure string, score func(*network.Graph) map[string]float64) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	g := mustLoadGraph(repoRoot)

	bins := centralityBins
	if bins == 0 {
		bins = cfg.HistogramBins
	}

	scores := score(g)
	h, err := analysis.NewHistogram(analysis.Values(scores), bins)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	title := fmt.Sprintf("%s centrality", measure)
	if centralityPlot != "" {
		if err := writePlot(centralityPlot, viz.HistogramChart(title, h)); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	result := CentralityResult{
		Measure:   measure,
		Histogram: h,
		Top:       topScores(scores, centralityTop),
		Plot:      centralityPlot,
	}
	if humanOutput {
		fmt.Printf("%s distribution over %d nodes\n", title, h.Total)
		fmt.Print(formatHistogram(h))
		fmt.Println("Highest:")
		for _, s := range result.Top {
			fmt.Printf("  %-20s %.4f\n", s.ID, s.Score)
		}
		reportPlot(centralityPlot)
	} else {
		outputJSON(result)
	}
	return nil
}

// topScores returns the n highest scores, ties broken by ID.
func topScores(scores map[string]float64, n int) []NodeScore {
	out := make([]NodeScore, 0, len(scores))
	for id, s := range scores {
		out = append(out, NodeScore{ID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
