// Package network defines the collaboration graph and its core domain types.
package network

import (
	"errors"
)

// Node is a collaborator in the network.
type Node struct {
	ID       string `json:"id"`
	Grouping string `json:"grouping,omitempty"` // community/group label used for plot grouping
}

// Edge is an undirected collaboration between two nodes.
type Edge struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// Validation errors.
var (
	ErrEmptyNodeID   = errors.New("node id is required")
	ErrEmptySourceID = errors.New("source_id is required")
	ErrEmptyTargetID = errors.New("target_id is required")
	ErrSelfEdge      = errors.New("source_id and target_id cannot be the same")
)

// Validate checks that the node has an ID.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	return nil
}

// Validate checks that both endpoints are present and distinct.
func (e *Edge) Validate() error {
	if e.SourceID == "" {
		return ErrEmptySourceID
	}
	if e.TargetID == "" {
		return ErrEmptyTargetID
	}
	if e.SourceID == e.TargetID {
		return ErrSelfEdge
	}
	return nil
}

// Key returns the canonical pair for this edge, so (a,b) and (b,a) share a key.
func (e *Edge) Key() Pair {
	return NewPair(e.SourceID, e.TargetID)
}

// Pair is an unordered pair of node IDs stored with A < B.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewPair returns the canonical pair for x and y.
func NewPair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Less orders pairs lexicographically by (A, B).
func (p Pair) Less(o Pair) bool {
	if p.A != o.A {
		return p.A < o.A
	}
	return p.B < o.B
}

// String formats the pair as "a--b".
func (p Pair) String() string {
	return p.A + "--" + p.B
}

// DedupeEdges drops duplicate edges (in either direction) keeping first-seen order.
// The returned edges are canonicalized so SourceID < TargetID.
func DedupeEdges(edges []Edge) []Edge {
	seen := make(map[Pair]bool, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		k := e.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Edge{SourceID: k.A, TargetID: k.B})
	}
	return out
}
