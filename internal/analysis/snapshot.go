package analysis

import (
	"fmt"
	"sort"

	"github.com/matsen/collab/internal/network"
)

// OrderKey names a node attribute that plots can order by.
type OrderKey string

// Supported order keys.
const (
	OrderID               OrderKey = "id"
	OrderDegree           OrderKey = "degree"
	OrderDegreeCentrality OrderKey = "degree-centrality"
	OrderGrouping         OrderKey = "grouping"
)

// ValidOrderKeys lists the supported order keys.
var ValidOrderKeys = []OrderKey{OrderID, OrderDegree, OrderDegreeCentrality, OrderGrouping}

// ParseOrderKey validates an order key string.
func ParseOrderKey(s string) (OrderKey, error) {
	for _, k := range ValidOrderKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid order %q (valid: %v)", s, ValidOrderKeys)
}

// NodeStat holds the derived per-node values plots read.
type NodeStat struct {
	ID               string  `json:"id"`
	Grouping         string  `json:"grouping,omitempty"`
	Degree           int     `json:"degree"`
	DegreeCentrality float64 `json:"degree_centrality"`
}

// Snapshot is an immutable view of derived node values for one graph.
type Snapshot struct {
	stats []NodeStat
	index map[string]int
}

// NewSnapshot computes degree and degree centrality for every node of g.
func NewSnapshot(g *network.Graph) Snapshot {
	dc := DegreeCentrality(g)
	stats := make([]NodeStat, 0, g.Len())
	for _, n := range g.Nodes() {
		stats = append(stats, NodeStat{
			ID:               n.ID,
			Grouping:         n.Grouping,
			Degree:           g.Degree(n.ID),
			DegreeCentrality: dc[n.ID],
		})
	}
	return newSnapshot(stats)
}

func newSnapshot(stats []NodeStat) Snapshot {
	index := make(map[string]int, len(stats))
	for i, s := range stats {
		index[s.ID] = i
	}
	return Snapshot{stats: stats, index: index}
}

// Len returns the number of nodes in the snapshot.
func (s Snapshot) Len() int {
	return len(s.stats)
}

// Stats returns a copy of the per-node values in snapshot order.
func (s Snapshot) Stats() []NodeStat {
	out := make([]NodeStat, len(s.stats))
	copy(out, s.stats)
	return out
}

// Get returns the values for one node.
func (s Snapshot) Get(id string) (NodeStat, bool) {
	i, ok := s.index[id]
	if !ok {
		return NodeStat{}, false
	}
	return s.stats[i], true
}

// Position returns the index of id in snapshot order, or -1.
func (s Snapshot) Position(id string) int {
	i, ok := s.index[id]
	if !ok {
		return -1
	}
	return i
}

// OrderBy returns a new snapshot sorted ascending by key, ties broken by ID.
func (s Snapshot) OrderBy(key OrderKey) Snapshot {
	stats := s.Stats()
	sort.SliceStable(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		switch key {
		case OrderDegree:
			if a.Degree != b.Degree {
				return a.Degree < b.Degree
			}
		case OrderDegreeCentrality:
			if a.DegreeCentrality != b.DegreeCentrality {
				return a.DegreeCentrality < b.DegreeCentrality
			}
		case OrderGrouping:
			if a.Grouping != b.Grouping {
				return a.Grouping < b.Grouping
			}
		}
		return a.ID < b.ID
	})
	return newSnapshot(stats)
}

// GroupBy returns a new snapshot sorted by grouping, then by key within
// each group.
func (s Snapshot) GroupBy(key OrderKey) Snapshot {
	ordered := s.OrderBy(key).Stats()
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Grouping < ordered[j].Grouping
	})
	return newSnapshot(ordered)
}

// Groupings returns the distinct grouping labels in sorted order.
func (s Snapshot) Groupings() []string {
	seen := make(map[string]bool)
	var out []string
	for _, st := range s.stats {
		if !seen[st.Grouping] {
			seen[st.Grouping] = true
			out = append(out, st.Grouping)
		}
	}
	sort.Strings(out)
	return out
}
