// Package store persists circuit snapshots: the branch list a circuit was
// built from, serialized so the exact topology and supplied component
// values can be rebuilt later. Solved values are never stored; re-solving
// on restore keeps the persisted form minimal and always consistent.
//
// Two backends implement SnapshotStore:
//
//   - store/memory: a process-local map, for tests and ephemeral use
//   - store/sqlite: a file-backed database via mattn/go-sqlite3
//
// Example:
//
//	st, err := sqlite.NewSnapshotStore(sqlite.Options{Path: "./circuits.db"})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	snap := c.Snapshot("bridge-network")
//	if err := st.Save(ctx, &snap); err != nil {
//	    return err
//	}
package store
