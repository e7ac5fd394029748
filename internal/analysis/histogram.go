package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins matches the bin count of a default matplotlib histogram.
const DefaultBins = 10

// ErrInvalidBins is returned for a bin count below one.
var ErrInvalidBins = errors.New("bins must be at least 1")

// Histogram is an equal-width binning of a value distribution.
type Histogram struct {
	Edges  []float64 `json:"edges"`  // len(Counts)+1 bin boundaries
	Counts []int     `json:"counts"` // values per bin
	Total  int       `json:"total"`
}

// NewHistogram bins values into bins equal-width bins spanning [min, max].
// The maximum is counted in the last bin. If every value is equal the range
// is widened to [v-0.5, v+0.5].
func NewHistogram(values []float64, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, ErrInvalidBins
	}

	x := make([]float64, len(values))
	copy(x, values)
	sort.Float64s(x)

	lo, hi := 0.0, 1.0
	if len(x) > 0 {
		lo, hi = x[0], x[len(x)-1]
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Histogram{}, fmt.Errorf("histogram: values must be finite")
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	edges[bins] = hi

	// stat.Histogram uses half-open bins, so nudge the top divider past the
	// maximum to keep it in the last bin.
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	raw := stat.Histogram(nil, dividers, x, nil)
	counts := make([]int, len(raw))
	for i, c := range raw {
		counts[i] = int(c)
	}

	return Histogram{Edges: edges, Counts: counts, Total: len(x)}, nil
}

// Labels returns a "lo-hi" label for every bin.
func (h Histogram) Labels() []string {
	labels := make([]string, len(h.Counts))
	for i := range h.Counts {
		labels[i] = fmt.Sprintf("%.3f-%.3f", h.Edges[i], h.Edges[i+1])
	}
	return labels
}
