// Package main provides the collab CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/config"
	"github.com/matsen/collab/internal/network"
	"github.com/matsen/collab/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug logging on stderr
var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "collab",
	Short: "Collaboration network case-study CLI",
	Long: `collab analyzes an undirected collaboration network, where nodes are
users, edges mean two users worked on the same project, and every node
carries a grouping label.

Case study:
  - Degree and betweenness centrality distributions
  - Largest connected component as a grouped matrix plot
  - Arc and circos plots ordered by degree
  - Maximal cliques and the editing community of the largest one
  - Prolific collaborators and co-editor recommendations

Data is stored in git-versionable JSONL with ephemeral SQLite for queries.
All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	rootCmd.Version = Version
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// mustFindRepository finds the repository from the working directory, falling
// back to the configured workspace. Exits on error.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	repoRoot, err := config.ResolveRepository(cwd)
	if err != nil {
		if errors.Is(err, config.ErrNotRepository) {
			if humanOutput {
				fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
				os.Exit(ExitConfigError)
			}
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	slog.Debug("using repository", "root", repoRoot)
	return repoRoot
}

// mustOpenDatabase opens the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadGraph loads the network from the query cache. An empty cache is
// rebuilt from JSONL first. Exits with a data error when the graph is empty.
func mustLoadGraph(repoRoot string) *network.Graph {
	start := time.Now()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.CountNodes()
	if err != nil {
		exitWithError(ExitError, "counting nodes: %v", err)
	}
	if count == 0 {
		nodes, edges, err := db.RebuildFromJSONL(config.NodesPath(repoRoot), config.EdgesPath(repoRoot))
		if err != nil {
			exitWithError(ExitDataError, "rebuilding query database: %v", err)
		}
		slog.Debug("rebuilt empty cache", "nodes", nodes, "edges", edges)
	}

	g, err := db.LoadGraph()
	if err != nil {
		exitWithError(ExitDataError, "loading graph: %v", err)
	}
	if g.IsEmpty() {
		exitWithError(ExitDataError, "network is empty\n\nRun 'collab import <file>' to load a network.")
	}
	slog.Debug("loaded graph", "nodes", g.Len(), "edges", g.EdgeCount(), "elapsed", time.Since(start))
	return g
}
