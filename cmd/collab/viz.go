package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/network"
	"github.com/matsen/collab/internal/viz"
)

var (
	vizOutput  string
	vizOrder   string
	vizLayout  string
	vizGrouped bool
)

func init() {
	vizCmd.PersistentFlags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizArcCmd.Flags().StringVar(&vizOrder, "order", string(analysis.OrderDegree), "Node order: id, degree, degree-centrality, grouping")
	vizCircosCmd.Flags().StringVar(&vizOrder, "order", string(analysis.OrderDegree), "Node order: id, degree, degree-centrality, grouping")
	vizCircosCmd.Flags().BoolVar(&vizGrouped, "grouped", true, "Group nodes by grouping before ordering")
	vizNetworkCmd.Flags().StringVar(&vizLayout, "layout", "", "Layout algorithm: force, circle, or grid (default: default_layout from config)")
	vizCmd.AddCommand(vizArcCmd, vizCircosCmd, vizMatrixCmd, vizNetworkCmd)
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate network visualizations",
	Long: `Generate HTML visualizations of the whole network.

Examples:
  # Arc plot ordered by degree, to stdout
  collab viz arc > arc.html

  # Circos plot grouped by grouping
  collab viz circos --output circos.html

  # Adjacency matrix grouped by grouping
  collab viz matrix -o matrix.html

  # Interactive network with circular layout
  collab viz network --layout circle -o network.html`,
}

var vizArcCmd = &cobra.Command{
	Use:   "arc",
	Short: "Arc plot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := mustParseOrder(vizOrder)
		return runViz(func(g *network.Graph, snap analysis.Snapshot) viz.Chart {
			return viz.ArcChart("Collaboration network", g, snap, key)
		})
	},
}

var vizCircosCmd = &cobra.Command{
	Use:   "circos",
	Short: "Circos plot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := mustParseOrder(vizOrder)
		return runViz(func(g *network.Graph, snap analysis.Snapshot) viz.Chart {
			return viz.CircosChart("Collaboration network", g, snap, key, vizGrouped)
		})
	},
}

var vizMatrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Adjacency matrix plot grouped by grouping",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViz(func(g *network.Graph, snap analysis.Snapshot) viz.Chart {
			return viz.MatrixChart("Collaboration network", g, snap)
		})
	},
}

var vizNetworkCmd = &cobra.Command{
	Use:   "network",
	Short: "Interactive network view",
	Long: `Generate an interactive Cytoscape.js view of the network. Node colour shows
grouping and node size shows degree. Clicking a node highlights its
collaborators.`,
	Args: cobra.NoArgs,
	RunE: runVizNetwork,
}

func mustParseOrder(s string) analysis.OrderKey {
	key, err := analysis.ParseOrderKey(s)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return key
}

func runViz(build func(*network.Graph, analysis.Snapshot) viz.Chart) error {
	repoRoot := mustFindRepository()
	g := mustLoadGraph(repoRoot)
	chart := build(g, analysis.NewSnapshot(g))

	if vizOutput == "" {
		return viz.RenderPage(os.Stdout, chart)
	}
	if err := writePlot(vizOutput, chart); err != nil {
		return err
	}
	printVizOutput()
	return nil
}

func runVizNetwork(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	g := mustLoadGraph(repoRoot)

	layout := vizLayout
	if layout == "" {
		layout = cfg.DefaultLayout
	}

	data := viz.BuildNetworkData(g, analysis.NewSnapshot(g))
	html, err := viz.GenerateNetworkHTML(data, viz.HTMLOptions{Layout: layout})
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	if vizOutput == "" {
		fmt.Print(html)
		return nil
	}
	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	printVizOutput()
	return nil
}

func printVizOutput() {
	if humanOutput {
		fmt.Printf("Visualization written to %s\n", vizOutput)
	} else {
		outputJSON(map[string]string{"output": vizOutput})
	}
}
