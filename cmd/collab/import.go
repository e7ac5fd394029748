package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/config"
	"github.com/matsen/collab/internal/importer"
	"github.com/matsen/collab/internal/network"
	"github.com/matsen/collab/internal/storage"
)

var (
	importFormat    string
	importGroupings string
	importReplace   bool
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Input format: nodelink or edgelist (default: from extension)")
	importCmd.Flags().StringVar(&importGroupings, "groupings", "", "File of 'id grouping' lines to apply")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Replace the stored network instead of merging")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a collaboration network",
	Long: `Import a collaboration network into the repository.

Usage:
  collab import network.json
  collab import edges.txt --format edgelist --groupings groups.txt
  collab import network.json --replace

Supported formats:
  nodelink  - networkx node-link JSON (nodes with id and grouping, links)
  edgelist  - whitespace-separated "source target" lines

Directed and multigraph inputs are collapsed to a simple undirected graph.
Self edges are dropped. By default imported nodes and edges are merged with
the stored network.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	Format      string `json:"format"`
	NodesRead   int    `json:"nodes_read"`
	EdgesRead   int    `json:"edges_read"`
	SkippedSelf int    `json:"skipped_self_edges"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	Collapsed   bool   `json:"collapsed,omitempty"` // directed or multigraph input
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	path := args[0]

	format := importFormat
	if format == "" {
		format = importer.DetectFormat(path)
	}

	res, err := parseImportFile(path, format)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if importGroupings != "" {
		groups, err := parseGroupingsFile(importGroupings)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		res.ApplyGroupings(groups)
	}
	slog.Debug("parsed input", "file", path, "format", format, "nodes", len(res.Nodes), "edges", len(res.Edges))

	nodes, edges := res.Nodes, res.Edges
	if !importReplace {
		nodes, edges, err = mergeStored(repoRoot, nodes, edges)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	}
	nodes = impliedNodes(nodes, edges)
	edges = network.DedupeEdges(edges)

	// Validate before touching the source of truth.
	if _, err := network.Build(nodes, edges); err != nil {
		exitWithError(ExitDataError, "invalid network: %v", err)
	}

	if err := storage.WriteAllNodes(config.NodesPath(repoRoot), nodes); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := storage.WriteAllEdges(config.EdgesPath(repoRoot), edges); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()
	nodeCount, edgeCount, err := db.Replace(nodes, edges)
	if err != nil {
		exitWithError(ExitError, "updating query database: %v", err)
	}

	result := ImportResult{
		Format:      format,
		NodesRead:   len(res.Nodes),
		EdgesRead:   len(res.Edges),
		SkippedSelf: res.SkippedSelf,
		Nodes:       nodeCount,
		Edges:       edgeCount,
		Collapsed:   res.Directed || res.Multigraph,
	}
	if humanOutput {
		fmt.Printf("Imported %d nodes and %d edges from %s (%s)\n", result.NodesRead, result.EdgesRead, path, format)
		if result.SkippedSelf > 0 {
			fmt.Printf("  Skipped %d self edges\n", result.SkippedSelf)
		}
		if result.Collapsed {
			fmt.Println("  Input was directed or a multigraph; collapsed to a simple undirected graph")
		}
		fmt.Printf("Network now has %d nodes and %d edges\n", nodeCount, edgeCount)
	} else {
		outputJSON(result)
	}
	return nil
}

func parseImportFile(path, format string) (*importer.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	res, err := importer.Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return res, nil
}

func parseGroupingsFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	groups, err := importer.ParseGroupings(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return groups, nil
}

// mergeStored combines the stored JSONL network with the imported one.
func mergeStored(repoRoot string, nodes []network.Node, edges []network.Edge) ([]network.Node, []network.Edge, error) {
	storedNodes, err := storage.ReadAllNodes(config.NodesPath(repoRoot))
	if err != nil {
		return nil, nil, err
	}
	storedEdges, err := storage.ReadAllEdges(config.EdgesPath(repoRoot))
	if err != nil {
		return nil, nil, err
	}
	return storage.MergeNodes(storedNodes, nodes), append(storedEdges, edges...), nil
}

// impliedNodes appends a node with no grouping for every edge endpoint that
// has no node record.
func impliedNodes(nodes []network.Node, edges []network.Edge) []network.Node {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	for _, e := range edges {
		for _, id := range []string{e.SourceID, e.TargetID} {
			if !known[id] {
				known[id] = true
				nodes = append(nodes, network.Node{ID: id})
			}
		}
	}
	return nodes
}
