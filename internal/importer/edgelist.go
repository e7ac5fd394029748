package importer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/collab/internal/network"
	"github.com/matsen/collab/internal/storage"
)

// ParseEdgeList reads whitespace-separated "source target" lines. Extra
// columns (such as weights) are ignored; blank lines and lines starting with
// '#' are skipped. Every endpoint becomes a node with no grouping.
func ParseEdgeList(r io.Reader) (*Result, error) {
	res := &Result{}
	seen := make(map[string]bool)

	err := scanFields(r, func(lineNum int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: %w", lineNum, ErrMissingEndpoint)
		}
		src, dst := fields[0], fields[1]
		for _, id := range []string{src, dst} {
			if !seen[id] {
				seen[id] = true
				res.Nodes = append(res.Nodes, network.Node{ID: id})
			}
		}
		if src == dst {
			res.SkippedSelf++
			return nil
		}
		res.Edges = append(res.Edges, network.Edge{SourceID: src, TargetID: dst})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ParseGroupings reads "id grouping" lines into a map.
func ParseGroupings(r io.Reader) (map[string]string, error) {
	groups := make(map[string]string)
	err := scanFields(r, func(lineNum int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: expected \"id grouping\"", lineNum)
		}
		groups[fields[0]] = fields[1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// ApplyGroupings sets the grouping of every node listed in groups.
func (r *Result) ApplyGroupings(groups map[string]string) {
	for i, n := range r.Nodes {
		if g, ok := groups[n.ID]; ok {
			r.Nodes[i].Grouping = g
		}
	}
}

func scanFields(r io.Reader, fn func(lineNum int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, storage.MaxJSONLLineCapacity)
	scanner.Buffer(buf, storage.MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNum, strings.Fields(line)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
