package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// meshCount is E - N + C for the circuit's current topology.
func meshCount(c *Circuit) int {
	components := make(map[Node]bool)
	// Count connected components by flood fill over the branch keys.
	adj := make(map[Node][]Node)
	for k := range c.Branches() {
		adj[k.A] = append(adj[k.A], k.B)
		adj[k.B] = append(adj[k.B], k.A)
	}
	count := 0
	for _, n := range c.Nodes() {
		if components[n] {
			continue
		}
		count++
		stack := []Node{n}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if components[cur] {
				continue
			}
			components[cur] = true
			stack = append(stack, adj[cur]...)
		}
	}
	return len(c.Branches()) - len(c.Nodes()) + count
}

func TestMeshCount_TracksTopology(t *testing.T) {
	t.Parallel()

	c := New()
	assert.Len(t, c.Meshes(), 0)

	steps := []struct {
		name string
		add  [2]Node
	}{
		{name: "lone branch", add: [2]Node{1, 2}},
		{name: "parallel branch closes a loop", add: [2]Node{1, 2}},
		{name: "dangling branch adds no loop", add: [2]Node{2, 3}},
		{name: "closing the triangle", add: [2]Node{1, 3}},
		{name: "second component", add: [2]Node{5, 6}},
		{name: "parallel branch in second component", add: [2]Node{5, 6}},
	}
	for _, s := range steps {
		require.NoError(t, c.AddBranch(s.add[0], s.add[1], map[Component]any{R: 1, V: 1}))
		assert.Len(t, c.Meshes(), meshCount(c), "after %s", s.name)
	}

	require.NoError(t, c.DelBranch(1, 3, 0))
	assert.Len(t, c.Meshes(), meshCount(c), "after removing a triangle side")
	require.NoError(t, c.DelBranch(1, 2, 1))
	assert.Len(t, c.Meshes(), meshCount(c), "after removing a parallel branch")
}

func TestMesh_ParallelPair(t *testing.T) {
	t.Parallel()

	c := seriesLoop(t)
	meshes := c.Meshes()
	require.Len(t, meshes, 1)
	require.Len(t, meshes[0], 2)

	// The two slots are walked in opposite directions.
	direct0, reverse0 := meshes[0].traverses(BranchKey{A: 1, B: 2, Index: 0})
	direct1, reverse1 := meshes[0].traverses(BranchKey{A: 1, B: 2, Index: 1})
	assert.True(t, direct0 && !reverse0)
	assert.True(t, reverse1 && !direct1)
}

func TestMesh_Triangle(t *testing.T) {
	t.Parallel()

	c, err := Build([]BranchSpec{
		{A: 1, B: 2, Components: map[Component]any{V: 10, R: 0}},
		{A: 2, B: 3, Components: map[Component]any{R: 2, V: 0}},
		{A: 1, B: 3, Components: map[Component]any{R: 3, V: 0}},
	})
	require.NoError(t, err)

	meshes := c.Meshes()
	require.Len(t, meshes, 1)
	require.Len(t, meshes[0], 3)

	// Each side is traversed exactly once, and exactly one of the three runs
	// against its low→high direction whichever way the loop is oriented.
	reversed := 0
	for _, key := range []BranchKey{
		{A: 1, B: 2, Index: 0},
		{A: 2, B: 3, Index: 0},
		{A: 1, B: 3, Index: 0},
	} {
		direct, reverse := meshes[0].traverses(key)
		assert.True(t, direct != reverse, "side %s must be walked exactly once", key)
		if reverse {
			reversed++
		}
	}
	assert.True(t, reversed == 1 || reversed == 2, "loop orientation must flip on one leg of the triangle")
}

func TestMesh_ParallelBundleUsesExistingSlots(t *testing.T) {
	t.Parallel()

	c, err := Build([]BranchSpec{
		{A: 1, B: 2, Components: map[Component]any{V: 10, R: 0}},
		{A: 1, B: 2, Components: map[Component]any{R: 4, V: 0}},
		{A: 1, B: 2, Components: map[Component]any{R: 4, V: 0}},
	})
	require.NoError(t, err)

	// Removing the middle slot leaves 0 and 2; the synthetic loop must pair
	// the surviving indices, not assume they are contiguous.
	require.NoError(t, c.DelBranch(1, 2, 1))
	meshes := c.Meshes()
	require.Len(t, meshes, 1)

	d0, _ := meshes[0].traverses(BranchKey{A: 1, B: 2, Index: 0})
	_, r2 := meshes[0].traverses(BranchKey{A: 1, B: 2, Index: 2})
	assert.True(t, d0, "slot 0 walked forward")
	assert.True(t, r2, "slot 2 walked reversed")
	assert.True(t, c.Solved())
}
