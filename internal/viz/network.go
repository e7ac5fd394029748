package viz

import (
	"github.com/matsen/collab/internal/analysis"
	"github.com/matsen/collab/internal/network"
)

// BuildNetworkData converts a graph and its snapshot into the network view
// data, with nodes in snapshot order and colours keyed by grouping.
func BuildNetworkData(g *network.Graph, snap analysis.Snapshot) *NetworkData {
	colors := groupColors(snap.Groupings())

	data := &NetworkData{
		Nodes: make([]NetworkNode, 0, snap.Len()),
		Edges: make([]NetworkEdge, 0, g.EdgeCount()),
	}
	for _, st := range snap.Stats() {
		data.Nodes = append(data.Nodes, NetworkNode{
			ID:               st.ID,
			Label:            st.ID,
			Grouping:         st.Grouping,
			Color:            colors[st.Grouping],
			Degree:           st.Degree,
			DegreeCentrality: st.DegreeCentrality,
		})
	}
	for _, p := range g.Edges() {
		data.Edges = append(data.Edges, NetworkEdge{Source: p.A, Target: p.B})
	}
	return data
}
