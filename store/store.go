package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a snapshot ID is not present in the store.
var ErrNotFound = errors.New("store: snapshot not found")

// BranchRecord is the serialized form of one branch: endpoints, parallel
// index, and the two supplied component values rendered as expr strings.
// The slot named by Unknown is left empty; it is re-solved on restore.
type BranchRecord struct {
	A       int    `json:"a"`
	B       int    `json:"b"`
	Index   int    `json:"index"`
	R       string `json:"r,omitempty"`
	V       string `json:"v,omitempty"`
	I       string `json:"i,omitempty"`
	Unknown string `json:"unknown"`
}

// Snapshot captures a circuit's supplied topology at a point in time.
// Solved values are deliberately not stored; rebuilding the circuit from its
// branch list re-derives them.
type Snapshot struct {
	ID        string         `json:"id"`
	CircuitID string         `json:"circuit_id"`
	Name      string         `json:"name"`
	Branches  []BranchRecord `json:"branches"`
	CreatedAt time.Time      `json:"created_at"`
	Version   int            `json:"version"`
}

// SnapshotStore defines the interface for snapshot persistence.
type SnapshotStore interface {
	// Save stores a snapshot, replacing any snapshot with the same ID.
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load retrieves a snapshot by ID.
	Load(ctx context.Context, snapshotID string) (*Snapshot, error)

	// List returns all snapshots with the given name, ordered by version.
	List(ctx context.Context, name string) ([]*Snapshot, error)

	// Delete removes a snapshot.
	Delete(ctx context.Context, snapshotID string) error

	// Clear removes all snapshots with the given name.
	Clear(ctx context.Context, name string) error
}
