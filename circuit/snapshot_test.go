package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/kirchgo/expr"
)

func TestSnapshot_RecordsSuppliedComponents(t *testing.T) {
	t.Parallel()

	c := seriesLoop(t)
	snap := c.Snapshot("series")

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, c.ID(), snap.CircuitID)
	assert.Equal(t, "series", snap.Name)
	require.Len(t, snap.Branches, 2)

	source := snap.Branches[0]
	assert.Equal(t, 1, source.A)
	assert.Equal(t, 2, source.B)
	assert.Equal(t, 0, source.Index)
	assert.Equal(t, "10", source.V)
	assert.Equal(t, "0", source.R)
	assert.Equal(t, "", source.I, "the solved unknown must not be recorded")
	assert.Equal(t, "I", source.Unknown)
}

func TestFromSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	orig, err := Build([]BranchSpec{
		{A: 1, B: 2, Components: map[Component]any{V: "v", R: 0}},
		{A: 1, B: 2, Components: map[Component]any{R: "r", V: 0}},
		{A: 2, B: 3, Components: map[Component]any{R: 7, V: 0}},
	})
	require.NoError(t, err)

	restored, err := FromSnapshot(orig.Snapshot("round-trip"))
	require.NoError(t, err)

	assert.Equal(t, orig.State(), restored.State())
	assert.Equal(t, orig.Nodes(), restored.Nodes())

	want := orig.Branches()
	got := restored.Branches()
	require.Len(t, got, len(want))
	for key, wb := range want {
		gb, ok := got[key]
		require.True(t, ok, "branch %s missing after restore", key)
		assert.Equal(t, wb.Unknown, gb.Unknown)
		for _, comp := range []Component{R, V, I} {
			if comp == wb.Unknown {
				continue
			}
			assert.True(t, gb.Value(comp).Equal(wb.Value(comp)),
				"branch %s %s = %s, want %s", key, comp, gb.Value(comp), wb.Value(comp))
		}
	}
	// The unknowns re-solve to the same values.
	assert.True(t, got[BranchKey{A: 1, B: 2, Index: 0}].I.Equal(expr.Sym("v").Div(expr.Sym("r"))))
}

func TestFromSnapshot_CompactsSlots(t *testing.T) {
	t.Parallel()

	c, err := Build([]BranchSpec{
		{A: 1, B: 2, Components: map[Component]any{V: 10, R: 0}},
		{A: 1, B: 2, Components: map[Component]any{R: 4, V: 0}},
		{A: 1, B: 2, Components: map[Component]any{R: 4, V: 0}},
	})
	require.NoError(t, err)
	require.NoError(t, c.DelBranch(1, 2, 1))

	restored, err := FromSnapshot(c.Snapshot("gapped"))
	require.NoError(t, err)

	branches := restored.Branches()
	require.Len(t, branches, 2)
	assert.Contains(t, branches, BranchKey{A: 1, B: 2, Index: 0})
	assert.Contains(t, branches, BranchKey{A: 1, B: 2, Index: 1})
	assert.True(t, restored.Solved())
}

func TestFromSnapshot_RejectsBadRecords(t *testing.T) {
	t.Parallel()

	snap := seriesLoop(t).Snapshot("bad")
	snap.Branches[0].Unknown = "X"
	_, err := FromSnapshot(snap)
	require.Error(t, err)
}
