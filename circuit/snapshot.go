package circuit

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/smallnest/kirchgo/store"
)

// Snapshot captures the circuit's defining inputs as a persistable record.
// Only the supplied component values are recorded; solved unknowns are
// recomputed on restore, so a snapshot taken from an indeterminate circuit
// restores faithfully too. Branch records are listed in key order.
func (c *Circuit) Snapshot(name string) store.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]store.BranchRecord, 0, len(c.branches))
	for _, k := range c.sortedKeys() {
		br := c.branches[k]
		rec := store.BranchRecord{
			A:       int(k.A),
			B:       int(k.B),
			Index:   k.Index,
			Unknown: br.Unknown.String(),
		}
		for _, comp := range []Component{R, V, I} {
			if comp == br.Unknown {
				continue
			}
			switch comp {
			case R:
				rec.R = br.R.String()
			case V:
				rec.V = br.V.String()
			case I:
				rec.I = br.I.String()
			}
		}
		records = append(records, rec)
	}

	return store.Snapshot{
		ID:        uuid.NewString(),
		CircuitID: c.id,
		Name:      name,
		Branches:  records,
		CreatedAt: time.Now().UTC(),
	}
}

// FromSnapshot rebuilds a circuit from a snapshot and solves it. Parallel
// slot indices are reassigned compactly in record order, so a snapshot taken
// after deletions may come back with lower indices than it recorded.
func FromSnapshot(snap store.Snapshot, opts ...Option) (*Circuit, error) {
	records := append([]store.BranchRecord(nil), snap.Branches...)
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.A != b.A {
			return a.A < b.A
		}
		if a.B != b.B {
			return a.B < b.B
		}
		return a.Index < b.Index
	})

	specs := make([]BranchSpec, 0, len(records))
	for _, rec := range records {
		unknown, err := ParseComponent(rec.Unknown)
		if err != nil {
			return nil, fmt.Errorf("snapshot branch (%d,%d,%d): %w", rec.A, rec.B, rec.Index, err)
		}
		components := make(map[Component]any, 2)
		for comp, raw := range map[Component]string{R: rec.R, V: rec.V, I: rec.I} {
			if comp == unknown {
				continue
			}
			components[comp] = raw
		}
		specs = append(specs, BranchSpec{A: Node(rec.A), B: Node(rec.B), Components: components})
	}
	return Build(specs, opts...)
}
