package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/smallnest/kirchgo/store"
)

// SnapshotStore implements store.SnapshotStore on a SQLite database file.
// The branch list is stored as a JSON payload column; identity and listing
// fields are first-class columns.
type SnapshotStore struct {
	db        *sql.DB
	tableName string
}

var _ store.SnapshotStore = (*SnapshotStore)(nil)

// Options configures the SQLite connection.
type Options struct {
	Path      string
	TableName string // defaults to "snapshots"
}

// NewSnapshotStore opens (or creates) the database and ensures the schema.
func NewSnapshotStore(opts Options) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "snapshots"
	}

	s := &SnapshotStore{db: db, tableName: tableName}
	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema creates the snapshot table if it doesn't exist.
func (s *SnapshotStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			circuit_id TEXT NOT NULL,
			name TEXT NOT NULL,
			branches TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			version INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_name ON %s (name);
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Save stores a snapshot, replacing any snapshot with the same ID.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	branchesJSON, err := json.Marshal(snapshot.Branches)
	if err != nil {
		return fmt.Errorf("failed to marshal branches: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, circuit_id, name, branches, created_at, version)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			circuit_id = excluded.circuit_id,
			name = excluded.name,
			branches = excluded.branches,
			created_at = excluded.created_at,
			version = excluded.version
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.CircuitID,
		snapshot.Name,
		string(branchesJSON),
		snapshot.CreatedAt,
		snapshot.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by ID.
func (s *SnapshotStore) Load(ctx context.Context, snapshotID string) (*store.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, circuit_id, name, branches, created_at, version
		FROM %s
		WHERE id = ?
	`, s.tableName)

	var snap store.Snapshot
	var branchesJSON string
	err := s.db.QueryRowContext(ctx, query, snapshotID).Scan(
		&snap.ID,
		&snap.CircuitID,
		&snap.Name,
		&branchesJSON,
		&snap.CreatedAt,
		&snap.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(branchesJSON), &snap.Branches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal branches: %w", err)
	}
	return &snap, nil
}

// List returns all snapshots with the given name, ordered by version.
func (s *SnapshotStore) List(ctx context.Context, name string) ([]*store.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, circuit_id, name, branches, created_at, version
		FROM %s
		WHERE name = ?
		ORDER BY version ASC, created_at ASC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*store.Snapshot
	for rows.Next() {
		var snap store.Snapshot
		var branchesJSON string
		err := rows.Scan(
			&snap.ID,
			&snap.CircuitID,
			&snap.Name,
			&branchesJSON,
			&snap.CreatedAt,
			&snap.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if err := json.Unmarshal([]byte(branchesJSON), &snap.Branches); err != nil {
			return nil, fmt.Errorf("failed to unmarshal branches: %w", err)
		}
		snapshots = append(snapshots, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return snapshots, nil
}

// Delete removes a snapshot. Deleting an absent ID is a no-op.
func (s *SnapshotStore) Delete(ctx context.Context, snapshotID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	if _, err := s.db.ExecContext(ctx, query, snapshotID); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Clear removes all snapshots with the given name.
func (s *SnapshotStore) Clear(ctx context.Context, name string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE name = ?", s.tableName)
	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
