package recommend

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matsen/collab/internal/network"
)

func buildGraph(t *testing.T, ids []string, pairs [][2]string) *network.Graph {
	t.Helper()
	nodes := make([]network.Node, len(ids))
	for i, id := range ids {
		nodes[i] = network.Node{ID: id}
	}
	edges := make([]network.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = network.Edge{SourceID: p[0], TargetID: p[1]}
	}
	g, err := network.Build(nodes, edges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func TestCount_Star(t *testing.T) {
	g := buildGraph(t, []string{"c", "l1", "l2", "l3"}, [][2]string{
		{"c", "l1"}, {"c", "l2"}, {"c", "l3"},
	})

	counts := Count(g)
	want := []network.Pair{
		network.NewPair("l1", "l2"),
		network.NewPair("l1", "l3"),
		network.NewPair("l2", "l3"),
	}
	if len(counts) != len(want) {
		t.Fatalf("got %d pairs, want %d: %v", len(counts), len(want), counts)
	}
	for _, p := range want {
		if counts[p] != 1 {
			t.Errorf("counts[%s] = %d, want 1", p, counts[p])
		}
	}
}

func TestCount_SkipsConnectedPairs(t *testing.T) {
	// l1-l2 are connected, so only pairs involving l3 are open.
	g := buildGraph(t, []string{"c", "l1", "l2", "l3"}, [][2]string{
		{"c", "l1"}, {"c", "l2"}, {"c", "l3"}, {"l1", "l2"},
	})

	counts := Count(g)
	if _, ok := counts[network.NewPair("l1", "l2")]; ok {
		t.Error("connected pair l1-l2 should not be recommended")
	}
	if len(counts) != 2 {
		t.Errorf("got %d pairs, want 2: %v", len(counts), counts)
	}
}

func TestCount_SharedNeighboursAccumulate(t *testing.T) {
	// a and b share three collaborators: x, y, z.
	g := buildGraph(t, []string{"a", "b", "x", "y", "z"}, [][2]string{
		{"a", "x"}, {"a", "y"}, {"a", "z"},
		{"b", "x"}, {"b", "y"}, {"b", "z"},
	})

	counts := Count(g)
	if got := counts[network.NewPair("b", "a")]; got != 3 {
		t.Errorf("counts[a--b] = %d, want 3", got)
	}
	if got := counts[network.NewPair("x", "y")]; got != 2 {
		t.Errorf("counts[x--y] = %d, want 2", got)
	}
}

func TestSelect_FewerThanN(t *testing.T) {
	counts := Counts{
		network.NewPair("a", "b"): 2,
		network.NewPair("a", "c"): 1,
	}
	got, err := Select(counts, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Count != 2 {
		t.Errorf("Select() = %v, want both pairs ranked", got)
	}
}

// tiedCounts has eight pairs with distinct high counts and three pairs tied
// at the 10th-highest count.
func tiedCounts() Counts {
	counts := make(Counts)
	for i := 0; i < 8; i++ {
		counts[network.NewPair("a", fmt.Sprintf("h%d", i))] = 20 - i
	}
	for i := 0; i < 3; i++ {
		counts[network.NewPair("b", fmt.Sprintf("t%d", i))] = 5
	}
	counts[network.NewPair("c", "low")] = 1
	return counts
}

func TestSelect_TiesAtThreshold(t *testing.T) {
	counts := tiedCounts()

	threshold, ok := Threshold(counts, 10)
	if !ok || threshold != 5 {
		t.Fatalf("Threshold() = %d, %v; want 5, true", threshold, ok)
	}

	strict, err := Select(counts, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(strict) != 8 {
		t.Errorf("Select() returned %d pairs, want 8 (tied pairs excluded)", len(strict))
	}
	for _, r := range strict {
		if r.Count <= threshold {
			t.Errorf("pair %s with count %d is not above threshold", r.Pair, r.Count)
		}
	}

	inclusive, err := SelectInclusive(counts, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(inclusive) != 11 {
		t.Errorf("SelectInclusive() returned %d pairs, want 11 (more than 10)", len(inclusive))
	}
}

func TestSelect_GraphTiedAtThreshold(t *testing.T) {
	// A five-leaf star produces ten leaf pairs all with count 1.
	g := buildGraph(t, []string{"c", "l1", "l2", "l3", "l4", "l5"}, [][2]string{
		{"c", "l1"}, {"c", "l2"}, {"c", "l3"}, {"c", "l4"}, {"c", "l5"},
	})

	counts := Count(g)
	strict, err := Select(counts, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(strict) != 0 {
		t.Errorf("Select() = %v, want none above a fully tied threshold", strict)
	}

	inclusive, err := SelectInclusive(counts, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(inclusive) != 10 {
		t.Errorf("SelectInclusive(3) returned %d pairs, want all 10 tied pairs", len(inclusive))
	}
}

func TestSelect_InvalidTop(t *testing.T) {
	if _, err := Select(Counts{}, 0); !errors.Is(err, ErrInvalidTopN) {
		t.Errorf("Select(0) error = %v, want ErrInvalidTopN", err)
	}
	if _, err := SelectInclusive(Counts{}, -1); !errors.Is(err, ErrInvalidTopN) {
		t.Errorf("SelectInclusive(-1) error = %v, want ErrInvalidTopN", err)
	}
}

func TestRanked_Deterministic(t *testing.T) {
	counts := Counts{
		network.NewPair("d", "e"): 1,
		network.NewPair("a", "b"): 1,
		network.NewPair("x", "y"): 4,
	}
	got := Ranked(counts)
	want := []string{"x--y", "a--b", "d--e"}
	for i, r := range got {
		if r.Pair.String() != want[i] {
			t.Fatalf("Ranked() order = %v, want %v", got, want)
		}
	}
}
