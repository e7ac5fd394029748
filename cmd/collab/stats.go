package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/analysis"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the network",
	Long: `Print node and edge counts, density, connected components and maximal
cliques, plus the number of nodes in each grouping.`,
	RunE: runStats,
}

// StatsResult is the response for the stats command.
type StatsResult struct {
	analysis.Summary
	Groupings map[string]int `json:"groupings"`
}

func runStats(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	g := mustLoadGraph(repoRoot)

	db := mustOpenDatabase(repoRoot)
	defer db.Close()
	groups, err := db.GetGroupingCounts()
	if err != nil {
		exitWithError(ExitError, "counting groupings: %v", err)
	}

	result := StatsResult{Summary: analysis.Summarize(g), Groupings: groups}
	if !humanOutput {
		outputJSON(result)
		return nil
	}

	s := result.Summary
	fmt.Printf("Nodes:             %d\n", s.Nodes)
	fmt.Printf("Edges:             %d\n", s.Edges)
	fmt.Printf("Density:           %.4f\n", s.Density)
	fmt.Printf("Components:        %d (largest %d nodes)\n", s.Components, s.LargestComponentSize)
	fmt.Printf("Maximal cliques:   %d (largest %d nodes)\n", s.MaximalCliques, s.LargestCliqueSize)

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	fmt.Println("Groupings:")
	for _, label := range labels {
		name := label
		if name == "" {
			name = "(none)"
		}
		fmt.Printf("  %-16s %d\n", name, groups[label])
	}
	return nil
}
