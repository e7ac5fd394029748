package viz

// groupPalette colours groupings in sorted label order, cycling when there
// are more groupings than colours.
var groupPalette = []string{
	"#4A90D9", "#E8923A", "#5CB85C", "#9B59B6", "#E74C3C",
	"#1ABC9C", "#F1C40F", "#34495E", "#D35400", "#7F8C8D",
}

// groupColors assigns a palette colour to every grouping label.
func groupColors(groupings []string) map[string]string {
	colors := make(map[string]string, len(groupings))
	for i, g := range groupings {
		colors[g] = groupPalette[i%len(groupPalette)]
	}
	return colors
}

// groupIndex maps every grouping label to its position.
func groupIndex(groupings []string) map[string]int {
	idx := make(map[string]int, len(groupings))
	for i, g := range groupings {
		idx[g] = i
	}
	return idx
}

// groupName labels the empty grouping for legends.
func groupName(g string) string {
	if g == "" {
		return "(none)"
	}
	return g
}
