// Package sqlite provides SQLite-backed storage for circuit snapshots.
//
// Snapshots are kept in a single table with the branch list serialized as a
// JSON column. The store is file-based and needs no external server, which
// makes it a good fit for local tooling and tests.
//
// # Basic Usage
//
//	import (
//		"context"
//		"github.com/smallnest/kirchgo/store/sqlite"
//	)
//
//	st, err := sqlite.NewSnapshotStore(sqlite.Options{
//		Path:      "./circuits.db",
//		TableName: "snapshots", // optional
//	})
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//
//	snap := c.Snapshot("bridge")
//	if err := st.Save(context.Background(), &snap); err != nil {
//		return err
//	}
//
// An in-memory database is available for tests:
//
//	st, err := sqlite.NewSnapshotStore(sqlite.Options{Path: ":memory:"})
package sqlite
