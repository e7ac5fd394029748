package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new collab repository",
	Long: `Initialize a new collab repository in the given directory (default: current).

Creates:
  .collab/
  ├── nodes.jsonl     # Empty file
  ├── edges.jsonl     # Empty file
  ├── config.json     # Default config
  └── cache/          # Empty directory (gitignored)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		exitWithError(ExitError, "resolving path: %v", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", root, err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a collab repository")
	}
	if _, err := config.Init(root); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized collab repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}
	return nil
}
