// Package importer parses collaboration networks from external formats.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/matsen/collab/internal/network"
)

// Import errors.
var (
	ErrMissingID       = errors.New("missing id")
	ErrMissingEndpoint = errors.New("missing source or target")
)

// Result holds the nodes and edges parsed from an input document.
// Self edges are dropped and counted; edges are not yet deduplicated.
type Result struct {
	Nodes       []network.Node
	Edges       []network.Edge
	SkippedSelf int
	Directed    bool // input declared itself directed; edges were read as undirected
	Multigraph  bool
}

// nodeLinkDoc mirrors networkx node-link JSON.
type nodeLinkDoc struct {
	Directed   bool             `json:"directed"`
	Multigraph bool             `json:"multigraph"`
	Nodes      []map[string]any `json:"nodes"`
	Links      []map[string]any `json:"links"`
	Edges      []map[string]any `json:"edges"`
}

// ParseNodeLink reads a networkx node-link JSON document. Node ids may be
// strings or numbers; a "grouping" attribute becomes the node grouping.
// Links may be under "links" or "edges".
func ParseNodeLink(r io.Reader) (*Result, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc nodeLinkDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing node-link JSON: %w", err)
	}

	res := &Result{Directed: doc.Directed, Multigraph: doc.Multigraph}
	for i, raw := range doc.Nodes {
		id := scalarString(raw["id"])
		if id == "" {
			return nil, fmt.Errorf("node %d: %w", i, ErrMissingID)
		}
		res.Nodes = append(res.Nodes, network.Node{ID: id, Grouping: scalarString(raw["grouping"])})
	}

	links := doc.Links
	if len(links) == 0 {
		links = doc.Edges
	}
	for i, raw := range links {
		e := network.Edge{SourceID: scalarString(raw["source"]), TargetID: scalarString(raw["target"])}
		if e.SourceID == "" || e.TargetID == "" {
			return nil, fmt.Errorf("link %d: %w", i, ErrMissingEndpoint)
		}
		if e.SourceID == e.TargetID {
			res.SkippedSelf++
			continue
		}
		res.Edges = append(res.Edges, e)
	}

	return res, nil
}

// scalarString formats a JSON scalar as a string; nil becomes "".
func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(x)
	}
}
