package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/recommend"
	"github.com/matsen/collab/internal/viz"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writePlot renders charts into path as one HTML page.
func writePlot(path string, cs ...viz.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := viz.RenderPage(f, cs...); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

// reportPlot prints where a plot was written, in human mode only.
func reportPlot(path string) {
	if path != "" && humanOutput {
		fmt.Printf("Plot written to %s\n", path)
	}
}

// formatIDList formats a list of IDs as a comma-separated string.
func formatIDList(ids []string) string {
	return strings.Join(ids, ", ")
}

// formatHistogram renders a histogram as one line per bin with a bar.
func formatHistogram(h analysis.Histogram) string {
	const width = 40
	peak := 0
	for _, c := range h.Counts {
		peak = max(peak, c)
	}

	var sb strings.Builder
	for i, label := range h.Labels() {
		bar := 0
		if peak > 0 {
			bar = h.Counts[i] * width / peak
		}
		fmt.Fprintf(&sb, "%-13s %5d %s\n", label, h.Counts[i], strings.Repeat("#", bar))
	}
	return sb.String()
}

// printRecommendationsHuman prints recommended pairs in rank order.
func printRecommendationsHuman(recs []recommend.Recommendation) {
	if len(recs) == 0 {
		fmt.Println("No recommendations")
		return
	}
	for i, r := range recs {
		fmt.Printf("%d. %s and %s (%d shared collaborators)\n", i+1, r.Pair.A, r.Pair.B, r.Count)
	}
}
