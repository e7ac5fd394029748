// Package storage handles network persistence in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/collab/internal/network"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// readJSONL decodes one value per non-empty line, validating each as it goes.
// A missing file reads as empty.
func readJSONL[T any](path, what string, validate func(*T) error) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s file: %w", what, err)
	}
	defer f.Close()

	var items []T
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if err := validate(&item); err != nil {
			return nil, fmt.Errorf("invalid %s at line %d: %w", what, lineNum, err)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s file: %w", what, err)
	}
	return items, nil
}

// writeJSONLine marshals v and writes it followed by a newline.
func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}
	return nil
}

func writeAll[T any](path, what string, items []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s file: %w", what, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, item := range items {
		if err := writeJSONLine(w, item); err != nil {
			return fmt.Errorf("%s %d: %w", what, i, err)
		}
	}
	return w.Flush()
}

func appendOne(path, what string, item any) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s file for append: %w", what, err)
	}
	defer f.Close()

	return writeJSONLine(f, item)
}

// ReadAllNodes reads all nodes from a JSONL file.
// Returns an error if any node fails validation (fail-fast).
func ReadAllNodes(path string) ([]network.Node, error) {
	return readJSONL(path, "node", func(n *network.Node) error { return n.Validate() })
}

// WriteAllNodes writes all nodes to a JSONL file, replacing existing content.
func WriteAllNodes(path string, nodes []network.Node) error {
	return writeAll(path, "node", nodes)
}

// AppendNode adds a node to the end of a JSONL file.
func AppendNode(path string, n network.Node) error {
	return appendOne(path, "node", n)
}

// ReadAllEdges reads all edges from a JSONL file.
// Returns an error if any edge fails validation (fail-fast).
func ReadAllEdges(path string) ([]network.Edge, error) {
	return readJSONL(path, "edge", func(e *network.Edge) error { return e.Validate() })
}

// WriteAllEdges writes all edges to a JSONL file, replacing existing content.
func WriteAllEdges(path string, edges []network.Edge) error {
	return writeAll(path, "edge", edges)
}

// AppendEdge adds an edge to the end of a JSONL file.
func AppendEdge(path string, e network.Edge) error {
	return appendOne(path, "edge", e)
}

// MergeNodes adds incoming nodes to existing ones. An incoming node with a
// known ID replaces the existing grouping only when the incoming one is set.
func MergeNodes(existing, incoming []network.Node) []network.Node {
	idx := make(map[string]int, len(existing))
	out := make([]network.Node, len(existing), len(existing)+len(incoming))
	copy(out, existing)
	for i, n := range out {
		idx[n.ID] = i
	}
	for _, n := range incoming {
		if i, ok := idx[n.ID]; ok {
			if n.Grouping != "" {
				out[i].Grouping = n.Grouping
			}
			continue
		}
		idx[n.ID] = len(out)
		out = append(out, n)
	}
	return out
}
