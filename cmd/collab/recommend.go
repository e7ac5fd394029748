package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/recommend"
)

var (
	recommendTop       int
	recommendInclusive bool
)

func init() {
	recommendCmd.Flags().IntVar(&recommendTop, "top", 0, "N for the threshold (default: top_pairs from config)")
	recommendCmd.Flags().BoolVar(&recommendInclusive, "inclusive", false, "Keep pairs tied at the N-th largest count")
	rootCmd.AddCommand(recommendCmd)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend co-editors by open triangles",
	Long: `Recommend pairs of users who are not connected but share collaborators.

For every node, each pair of its neighbours that has no direct edge gains
one count. Pairs are kept when their count is strictly greater than the
N-th largest count; --inclusive keeps pairs tied at that count as well.
With fewer than N candidate pairs every pair is returned.`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

// RecommendResult is the response for the recommend command.
type RecommendResult struct {
	Top             int                        `json:"top"`
	Threshold       *int                       `json:"threshold"`
	Inclusive       bool                       `json:"inclusive"`
	Candidates      int                        `json:"candidates"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	g := mustLoadGraph(repoRoot)

	top := recommendTop
	if top == 0 {
		top = cfg.TopPairs
	}

	counts := recommend.Count(g)
	slog.Debug("counted open triangles", "pairs", len(counts))

	selectFn := recommend.Select
	if recommendInclusive {
		selectFn = recommend.SelectInclusive
	}
	recs, err := selectFn(counts, top)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := RecommendResult{
		Top:             top,
		Inclusive:       recommendInclusive,
		Candidates:      len(counts),
		Recommendations: recs,
	}
	if t, ok := recommend.Threshold(counts, top); ok {
		result.Threshold = &t
	}

	if humanOutput {
		if result.Threshold != nil {
			fmt.Printf("Threshold: %d shared collaborators (rank %d of %d candidates)\n", *result.Threshold, top, result.Candidates)
		} else {
			fmt.Printf("Fewer than %d candidates; showing all %d\n", top, result.Candidates)
		}
		printRecommendationsHuman(recs)
	} else {
		outputJSON(result)
	}
	return nil
}
