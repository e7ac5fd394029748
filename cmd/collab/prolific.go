package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/analysis"
)

func init() {
	rootCmd.AddCommand(prolificCmd)
}

var prolificCmd = &cobra.Command{
	Use:   "prolific",
	Short: "Most prolific collaborators",
	Long:  `List every node whose degree centrality equals the maximum. All ties are included.`,
	Args:  cobra.NoArgs,
	RunE:  runProlific,
}

// ProlificResult is the response for the prolific command.
type ProlificResult struct {
	DegreeCentrality float64  `json:"degree_centrality"`
	Degree           int      `json:"degree"`
	Nodes            []string `json:"nodes"`
}

func runProlific(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	g := mustLoadGraph(repoRoot)

	ids := analysis.ProlificCollaborators(g)
	result := ProlificResult{Nodes: ids}
	if len(ids) > 0 {
		result.Degree = g.Degree(ids[0])
		result.DegreeCentrality = analysis.DegreeCentrality(g)[ids[0]]
	}

	if humanOutput {
		fmt.Printf("Degree centrality %.4f (%d collaborators):\n", result.DegreeCentrality, result.Degree)
		for _, id := range ids {
			fmt.Printf("  %s\n", id)
		}
	} else {
		outputJSON(result)
	}
	return nil
}
