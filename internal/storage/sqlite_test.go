package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/collab/internal/network"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_RebuildFromJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	nodesPath := filepath.Join(tmpDir, "nodes.jsonl")
	edgesPath := filepath.Join(tmpDir, "edges.jsonl")

	nodes := `{"id":"u1","grouping":"1"}
{"id":"u2","grouping":"2"}`
	edges := `{"source_id":"u2","target_id":"u1"}
{"source_id":"u1","target_id":"u2"}
{"source_id":"u2","target_id":"u3"}`
	if err := os.WriteFile(nodesPath, []byte(nodes), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(edgesPath, []byte(edges), 0644); err != nil {
		t.Fatal(err)
	}

	db := openTestDB(t)
	nodeCount, edgeCount, err := db.RebuildFromJSONL(nodesPath, edgesPath)
	if err != nil {
		t.Fatalf("RebuildFromJSONL failed: %v", err)
	}
	if nodeCount != 3 {
		t.Errorf("expected 3 nodes (u3 implied by an edge), got %d", nodeCount)
	}
	if edgeCount != 2 {
		t.Errorf("expected 2 deduplicated edges, got %d", edgeCount)
	}

	got, err := db.GetAllEdges()
	if err != nil {
		t.Fatal(err)
	}
	want := []network.Edge{{SourceID: "u1", TargetID: "u2"}, {SourceID: "u2", TargetID: "u3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetAllEdges() = %v, want %v", got, want)
	}
}

func TestDB_RebuildFromJSONL_Missing(t *testing.T) {
	dir := t.TempDir()
	db := openTestDB(t)
	n, e, err := db.RebuildFromJSONL(filepath.Join(dir, "nodes.jsonl"), filepath.Join(dir, "edges.jsonl"))
	if err != nil {
		t.Fatalf("RebuildFromJSONL failed: %v", err)
	}
	if n != 0 || e != 0 {
		t.Errorf("expected empty database, got %d nodes, %d edges", n, e)
	}
}

func TestDB_ReplaceClearsPrevious(t *testing.T) {
	db := openTestDB(t)
	if _, _, err := db.Replace([]network.Node{{ID: "old"}}, nil); err != nil {
		t.Fatal(err)
	}
	if _, _, err := db.Replace([]network.Node{{ID: "new"}}, nil); err != nil {
		t.Fatal(err)
	}

	nodes, err := db.GetAllNodes()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0].ID != "new" {
		t.Errorf("GetAllNodes() = %v, want only new", nodes)
	}
}

func TestDB_Queries(t *testing.T) {
	db := openTestDB(t)
	nodes := []network.Node{{ID: "c", Grouping: "1"}, {ID: "l1", Grouping: "1"}, {ID: "l2", Grouping: "2"}}
	edges := []network.Edge{{SourceID: "c", TargetID: "l1"}, {SourceID: "l2", TargetID: "c"}}
	if _, _, err := db.Replace(nodes, edges); err != nil {
		t.Fatal(err)
	}

	nbrs, err := db.GetNeighbors("c")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(nbrs, []string{"l1", "l2"}) {
		t.Errorf("GetNeighbors(c) = %v", nbrs)
	}

	groups, err := db.GetGroupingCounts()
	if err != nil {
		t.Fatal(err)
	}
	if groups["1"] != 2 || groups["2"] != 1 {
		t.Errorf("GetGroupingCounts() = %v", groups)
	}

	nc, err := db.CountNodes()
	if err != nil || nc != 3 {
		t.Errorf("CountNodes() = %d, %v", nc, err)
	}
	ec, err := db.CountEdges()
	if err != nil || ec != 2 {
		t.Errorf("CountEdges() = %d, %v", ec, err)
	}

	g, err := db.LoadGraph()
	if err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}
	if g.Len() != 3 || g.EdgeCount() != 2 || !g.HasEdge("l2", "c") {
		t.Errorf("LoadGraph() built %d nodes, %d edges", g.Len(), g.EdgeCount())
	}
	if n, _ := g.Node("l2"); n.Grouping != "2" {
		t.Errorf("LoadGraph() lost grouping: %+v", n)
	}
}
