package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/smallnest/kirchgo/store"
)

// SnapshotStore is an in-memory store.SnapshotStore, safe for concurrent
// use. Snapshots are copied on save and load so callers cannot mutate
// stored state.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*store.Snapshot
}

var _ store.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates an empty in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string]*store.Snapshot)}
}

// Save stores a snapshot, replacing any existing snapshot with the same ID.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ID] = clone(snapshot)
	return nil
}

// Load retrieves a snapshot by ID.
func (s *SnapshotStore) Load(ctx context.Context, snapshotID string) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[snapshotID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(snap), nil
}

// List returns all snapshots with the given name, ordered by version, then
// creation time.
func (s *SnapshotStore) List(ctx context.Context, name string) ([]*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*store.Snapshot
	for _, snap := range s.snapshots {
		if snap.Name == name {
			out = append(out, clone(snap))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Version != out[j].Version {
			return out[i].Version < out[j].Version
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a snapshot. Deleting an absent ID is a no-op.
func (s *SnapshotStore) Delete(ctx context.Context, snapshotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, snapshotID)
	return nil
}

// Clear removes all snapshots with the given name.
func (s *SnapshotStore) Clear(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, snap := range s.snapshots {
		if snap.Name == name {
			delete(s.snapshots, id)
		}
	}
	return nil
}

func clone(snap *store.Snapshot) *store.Snapshot {
	out := *snap
	out.Branches = append([]store.BranchRecord(nil), snap.Branches...)
	return &out
}
