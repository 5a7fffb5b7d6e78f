package circuit

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Step is one directed traversal of a branch inside a mesh. Reverse is true
// when the mesh walks the branch against its own low→high direction.
type Step struct {
	Key     BranchKey
	Reverse bool
}

// Mesh is an ordered, closed sequence of directed branch traversals forming
// one independent loop. The full mesh set carries exactly E − N + C loops
// for E branches, N nodes and C connected components.
type Mesh []Step

// traverses reports whether m walks the branch k directly and/or reversed.
func (m Mesh) traverses(k BranchKey) (direct, reverse bool) {
	for _, s := range m {
		if s.Key == k {
			if s.Reverse {
				reverse = true
			} else {
				direct = true
			}
		}
	}
	return direct, reverse
}

// recomputeMeshes rebuilds the full mesh list from scratch: the cycle basis
// of the parallel-collapsed graph, plus one synthetic two-branch loop per
// extra parallel branch. The list is always replaced wholesale, never
// patched, so it cannot go stale relative to the graph.
func (c *Circuit) recomputeMeshes() {
	c.meshes = nil

	pairs := c.parallelIndex()

	// Cycle basis of the simplified graph. Each cycle becomes a closed run
	// of directed steps over the lowest-index branch of every node pair.
	collapsed := simple.NewUndirectedGraph()
	for _, p := range pairs {
		collapsed.SetEdge(simple.Edge{F: simple.Node(p.a), T: simple.Node(p.b)})
	}
	for _, cycle := range topo.UndirectedCyclesIn(collapsed) {
		if len(cycle) > 1 && cycle[0].ID() == cycle[len(cycle)-1].ID() {
			cycle = cycle[:len(cycle)-1]
		}
		n := len(cycle)
		mesh := make(Mesh, 0, n)
		for i := 0; i < n; i++ {
			u := Node(cycle[(i+n-1)%n].ID())
			w := Node(cycle[i].ID())
			lo, hi, rev := u, w, false
			if u > w {
				lo, hi, rev = w, u, true
			}
			mesh = append(mesh, Step{Key: BranchKey{A: lo, B: hi, Index: c.lowestIndex(lo, hi)}, Reverse: rev})
		}
		c.meshes = append(c.meshes, mesh)
	}

	// Synthetic loops: consecutive parallel branches traversed in opposite
	// directions capture the loop constraints the collapsed graph cannot see.
	for _, p := range pairs {
		for i := 0; i+1 < len(p.indices); i++ {
			c.meshes = append(c.meshes, Mesh{
				{Key: BranchKey{A: p.a, B: p.b, Index: p.indices[i]}},
				{Key: BranchKey{A: p.a, B: p.b, Index: p.indices[i+1]}, Reverse: true},
			})
		}
	}
}

type nodePair struct {
	a, b    Node
	indices []int // parallel indices present, ascending
}

// parallelIndex groups the branch keys by node pair, deterministically
// ordered, with each pair's parallel indices sorted ascending.
func (c *Circuit) parallelIndex() []nodePair {
	grouped := make(map[[2]Node][]int)
	for k := range c.branches {
		pk := [2]Node{k.A, k.B}
		grouped[pk] = append(grouped[pk], k.Index)
	}
	pairs := make([]nodePair, 0, len(grouped))
	for pk, indices := range grouped {
		sort.Ints(indices)
		pairs = append(pairs, nodePair{a: pk[0], b: pk[1], indices: indices})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	return pairs
}

// lowestIndex returns the smallest parallel index present between a and b.
func (c *Circuit) lowestIndex(a, b Node) int {
	best, found := 0, false
	for k := range c.branches {
		if k.A == a && k.B == b && (!found || k.Index < best) {
			best, found = k.Index, true
		}
	}
	return best
}
