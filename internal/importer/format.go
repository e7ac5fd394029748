package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Supported input formats.
const (
	FormatNodeLink = "nodelink"
	FormatEdgeList = "edgelist"
)

// ValidFormats lists the supported input format names.
var ValidFormats = []string{FormatNodeLink, FormatEdgeList}

// DetectFormat guesses the format from a file extension: .json is node-link,
// anything else is an edge list.
func DetectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatNodeLink
	}
	return FormatEdgeList
}

// Parse dispatches to the parser for format.
func Parse(r io.Reader, format string) (*Result, error) {
	switch format {
	case FormatNodeLink:
		return ParseNodeLink(r)
	case FormatEdgeList:
		return ParseEdgeList(r)
	default:
		return nil, fmt.Errorf("invalid format %q (valid: %v)", format, ValidFormats)
	}
}
