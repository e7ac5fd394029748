// Package viz renders collaboration network plots as self-contained HTML.
package viz

// NetworkData contains all data needed to render the interactive network view.
type NetworkData struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

// NetworkNode is a collaborator in the network view.
type NetworkNode struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Grouping string `json:"grouping"`
	Color    string `json:"color"`

	// Sizing and tooltips
	Degree           int     `json:"degree"`
	DegreeCentrality float64 `json:"degreeCentrality"`
}

// NetworkEdge is a collaboration between two nodes.
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsEmpty returns true if the network has no nodes.
func (d *NetworkData) IsEmpty() bool {
	return len(d.Nodes) == 0
}
