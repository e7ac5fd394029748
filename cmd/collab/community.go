package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/viz"
)

var communityPlot string

func init() {
	communityCmd.Flags().StringVar(&communityPlot, "plot", "", "Write an arc plot ordered by degree centrality to this HTML file")
	rootCmd.AddCommand(communityCmd)
}

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Editing community of the largest clique",
	Long: `Expand the largest maximal clique one hop: every neighbour of a clique member
is added along with its edge to that member. Edges between two added
neighbours are not included.`,
	Args: cobra.NoArgs,
	RunE: runCommunity,
}

// CommunityResult is the response for the community command.
type CommunityResult struct {
	Clique []string            `json:"clique"`
	Nodes  []analysis.NodeStat `json:"nodes"`
	Edges  int                 `json:"edges"`
	Plot   string              `json:"plot,omitempty"`
}

func runCommunity(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	g := mustLoadGraph(repoRoot)

	clique, err := analysis.LargestClique(g)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	community, err := analysis.EditingCommunity(g)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	snap := analysis.NewSnapshot(community)

	if communityPlot != "" {
		chart := viz.ArcChart("Editing community of the largest clique", community, snap, analysis.OrderDegreeCentrality)
		if err := writePlot(communityPlot, chart); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	result := CommunityResult{
		Clique: clique,
		Nodes:  snap.OrderBy(analysis.OrderDegreeCentrality).Stats(),
		Edges:  community.EdgeCount(),
		Plot:   communityPlot,
	}
	if humanOutput {
		fmt.Printf("Clique (%d): %s\n", len(clique), formatIDList(clique))
		fmt.Printf("Community: %d nodes, %d edges\n", len(result.Nodes), result.Edges)
		for _, st := range result.Nodes {
			fmt.Printf("  %-20s %.4f\n", st.ID, st.DegreeCentrality)
		}
		reportPlot(communityPlot)
	} else {
		outputJSON(result)
	}
	return nil
}
