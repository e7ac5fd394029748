package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/viz"
)

var cliquesPlot string

func init() {
	cliquesCmd.Flags().StringVar(&cliquesPlot, "plot", "", "Write a circos plot of the largest clique to this HTML file")
	rootCmd.AddCommand(cliquesCmd)
}

var cliquesCmd = &cobra.Command{
	Use:   "cliques",
	Short: "Maximal cliques",
	Long: `Enumerate maximal cliques, report how many there are and print the largest.
Isolated nodes count as single-node cliques. Cliques of equal size are
ordered by their sorted member IDs, and the first is taken.`,
	Args: cobra.NoArgs,
	RunE: runCliques,
}

// CliquesResult is the response for the cliques command.
type CliquesResult struct {
	Count   int      `json:"count"`
	Largest []string `json:"largest"`
	Plot    string   `json:"plot,omitempty"`
}

func runCliques(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	g := mustLoadGraph(repoRoot)

	cliques := analysis.MaximalCliques(g)
	clique, err := analysis.LargestCliqueGraph(g)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if cliquesPlot != "" {
		chart := viz.CircosChart("Largest maximal clique", clique, analysis.NewSnapshot(clique), analysis.OrderDegree, true)
		if err := writePlot(cliquesPlot, chart); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	result := CliquesResult{Count: len(cliques), Largest: clique.IDs(), Plot: cliquesPlot}
	if humanOutput {
		fmt.Printf("%d maximal cliques\n", result.Count)
		fmt.Printf("Largest (%d nodes): %s\n", len(result.Largest), formatIDList(result.Largest))
		reportPlot(cliquesPlot)
	} else {
		outputJSON(result)
	}
	return nil
}
