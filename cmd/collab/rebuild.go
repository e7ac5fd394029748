package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/config"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query layer from source data",
	Long: `Rebuild the SQLite query database from the nodes and edges JSONL files.

Use this after pulling changes from git or if the database becomes corrupted.`,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status string `json:"status"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	nodes, edges, err := db.RebuildFromJSONL(config.NodesPath(repoRoot), config.EdgesPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt query database with %d nodes and %d edges\n", nodes, edges)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Nodes: nodes, Edges: edges})
	}
	return nil
}
