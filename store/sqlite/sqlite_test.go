package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/smallnest/kirchgo/store"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := NewSnapshotStore(Options{Path: path})
	if err != nil {
		t.Fatalf("NewSnapshotStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSnapshot(id, name string, version int) *store.Snapshot {
	return &store.Snapshot{
		ID:        id,
		CircuitID: "circuit-1",
		Name:      name,
		Branches: []store.BranchRecord{
			{A: 1, B: 2, Index: 0, V: "10", R: "5", Unknown: "I"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Version:   version,
	}
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	snap := testSnapshot("snap-1", "bridge", 1)
	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "snap-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.CircuitID != snap.CircuitID || got.Name != snap.Name || got.Version != snap.Version {
		t.Errorf("Load() = %+v, want %+v", got, snap)
	}
	if len(got.Branches) != 1 {
		t.Fatalf("Load() branches = %d, want 1", len(got.Branches))
	}
	if got.Branches[0] != snap.Branches[0] {
		t.Errorf("Load() branch = %+v, want %+v", got.Branches[0], snap.Branches[0])
	}
}

func TestSnapshotStore_LoadNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestSnapshotStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testSnapshot("snap-1", "bridge", 1)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	updated := testSnapshot("snap-1", "bridge", 2)
	updated.Branches = append(updated.Branches, store.BranchRecord{A: 2, B: 3, Index: 0, R: "4", V: "0", Unknown: "I"})
	if err := s.Save(ctx, updated); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "snap-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Version != 2 {
		t.Errorf("Version = %d, want 2", got.Version)
	}
	if len(got.Branches) != 2 {
		t.Errorf("branches = %d, want 2", len(got.Branches))
	}
}

func TestSnapshotStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Insert out of order to check the ordering clause.
	if err := s.Save(ctx, testSnapshot("snap-2", "bridge", 2)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, testSnapshot("snap-1", "bridge", 1)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, testSnapshot("snap-3", "other", 1)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snaps, err := s.List(ctx, "bridge")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("List() = %d snapshots, want 2", len(snaps))
	}
	if snaps[0].ID != "snap-1" || snaps[1].ID != "snap-2" {
		t.Errorf("List() order = [%s, %s], want [snap-1, snap-2]", snaps[0].ID, snaps[1].ID)
	}

	empty, err := s.List(ctx, "unknown")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("List(unknown) = %d snapshots, want 0", len(empty))
	}
}

func TestSnapshotStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testSnapshot("snap-1", "bridge", 1)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete(ctx, "snap-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Load(ctx, "snap-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Load() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting an absent ID succeeds.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestSnapshotStore_Clear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testSnapshot("snap-1", "bridge", 1)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, testSnapshot("snap-2", "bridge", 2)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, testSnapshot("snap-3", "other", 1)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := s.Clear(ctx, "bridge"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	snaps, err := s.List(ctx, "bridge")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("List() after clear = %d snapshots, want 0", len(snaps))
	}
	if _, err := s.Load(ctx, "snap-3"); err != nil {
		t.Errorf("Load(snap-3) after clear error = %v", err)
	}
}
