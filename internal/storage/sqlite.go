package storage

import (
	"database/sql"
	"fmt"

	"github.com/matsen/collab/internal/network"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
// Edges are stored once per unordered pair with source_id < target_id.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			group_label TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS edges (
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			PRIMARY KEY (source_id, target_id),
			CHECK (source_id < target_id)
		);

		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
		CREATE INDEX IF NOT EXISTS idx_nodes_grouping ON nodes(group_label);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from the nodes and
// edges JSONL files. Nodes referenced only by edges are added with no
// grouping. Returns the node and edge counts.
func (d *DB) RebuildFromJSONL(nodesPath, edgesPath string) (int, int, error) {
	nodes, err := ReadAllNodes(nodesPath)
	if err != nil {
		return 0, 0, fmt.Errorf("reading nodes JSONL: %w", err)
	}
	edges, err := ReadAllEdges(edgesPath)
	if err != nil {
		return 0, 0, fmt.Errorf("reading edges JSONL: %w", err)
	}
	return d.Replace(nodes, edges)
}

// Replace clears the database and stores the given nodes and edges in a
// single transaction. Returns the stored node and edge counts.
func (d *DB) Replace(nodes []network.Node, edges []network.Edge) (int, int, error) {
	edges = network.DedupeEdges(edges)
	implied := make([]network.Node, 0, len(edges)*2)
	for _, e := range edges {
		implied = append(implied, network.Node{ID: e.SourceID}, network.Node{ID: e.TargetID})
	}
	nodes = MergeNodes(nodes, implied)

	tx, err := d.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM edges"); err != nil {
		return 0, 0, fmt.Errorf("clearing edges table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM nodes"); err != nil {
		return 0, 0, fmt.Errorf("clearing nodes table: %w", err)
	}

	nodeStmt, err := tx.Prepare(`INSERT INTO nodes (id, group_label) VALUES (?, ?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing nodes insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, n := range nodes {
		if _, err := nodeStmt.Exec(n.ID, n.Grouping); err != nil {
			return 0, 0, fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.Prepare(`INSERT INTO edges (source_id, target_id) VALUES (?, ?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing edges insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range edges {
		if _, err := edgeStmt.Exec(e.SourceID, e.TargetID); err != nil {
			return 0, 0, fmt.Errorf("inserting edge %s: %w", e.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing: %w", err)
	}
	return len(nodes), len(edges), nil
}

// GetAllNodes returns all nodes ordered by ID.
func (d *DB) GetAllNodes() ([]network.Node, error) {
	rows, err := d.db.Query(`SELECT id, group_label FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var nodes []network.Node
	for rows.Next() {
		var n network.Node
		if err := rows.Scan(&n.ID, &n.Grouping); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// GetAllEdges returns all edges in canonical order.
func (d *DB) GetAllEdges() ([]network.Edge, error) {
	rows, err := d.db.Query(`SELECT source_id, target_id FROM edges ORDER BY source_id, target_id`)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	return scanEdges(rows)
}

// GetNeighbors returns the sorted neighbour IDs of a node.
func (d *DB) GetNeighbors(id string) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT target_id FROM edges WHERE source_id = ?
		UNION
		SELECT source_id FROM edges WHERE target_id = ?
		ORDER BY 1
	`, id, id)
	if err != nil {
		return nil, fmt.Errorf("querying neighbors: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var nbr string
		if err := rows.Scan(&nbr); err != nil {
			return nil, err
		}
		ids = append(ids, nbr)
	}
	return ids, rows.Err()
}

// GetGroupingCounts returns the number of nodes per grouping label.
func (d *DB) GetGroupingCounts() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT group_label, COUNT(*) FROM nodes GROUP BY group_label`)
	if err != nil {
		return nil, fmt.Errorf("querying groupings: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var g string
		var c int
		if err := rows.Scan(&g, &c); err != nil {
			return nil, err
		}
		counts[g] = c
	}
	return counts, rows.Err()
}

// CountNodes returns the total number of nodes.
func (d *DB) CountNodes() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&count)
	return count, err
}

// CountEdges returns the total number of edges.
func (d *DB) CountEdges() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM edges").Scan(&count)
	return count, err
}

// LoadGraph reads every node and edge and builds the network.
func (d *DB) LoadGraph() (*network.Graph, error) {
	nodes, err := d.GetAllNodes()
	if err != nil {
		return nil, err
	}
	edges, err := d.GetAllEdges()
	if err != nil {
		return nil, err
	}
	g, err := network.Build(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("building network: %w", err)
	}
	return g, nil
}

// scanEdges scans rows into a slice of edges.
func scanEdges(rows *sql.Rows) ([]network.Edge, error) {
	var edges []network.Edge
	for rows.Next() {
		var e network.Edge
		if err := rows.Scan(&e.SourceID, &e.TargetID); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
