package circuit

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/path"

	"github.com/smallnest/kirchgo/expr"
	"github.com/smallnest/kirchgo/log"
	"github.com/smallnest/kirchgo/solve"
)

// State describes the solve outcome for the current topology.
type State int

const (
	// Empty means the circuit has no branches; there is nothing to solve.
	Empty State = iota
	// Solved means every branch's unknown holds its unique solution.
	Solved
	// Underdetermined means the system is consistent but admits a family of
	// solutions; no member is picked and unknowns hold NaN.
	Underdetermined
	// Indeterminate means the system has no solution; unknowns hold NaN.
	Indeterminate
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Solved:
		return "solved"
	case Underdetermined:
		return "underdetermined"
	case Indeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Circuit models a DC electrical circuit as an undirected multigraph whose
// edges are branches. Every successful mutation revalidates the mesh set and
// re-solves the Kirchhoff equation system, so branch values and the solve
// state are never stale. A Circuit is safe for concurrent use; one exclusive
// lock guards each operation.
type Circuit struct {
	mu sync.Mutex

	id       string
	g        *multi.UndirectedGraph
	branches map[BranchKey]*Branch
	order    []Node // node identifiers in first-seen order
	lineIDs  map[BranchKey]int64
	nextLine int64
	meshes   []Mesh
	state    State

	solver solve.Solver
	logger log.Logger
}

// Option configures a Circuit.
type Option func(*Circuit)

// WithSolver replaces the default exact solver backend.
func WithSolver(s solve.Solver) Option {
	return func(c *Circuit) { c.solver = s }
}

// WithLogger gives the circuit its own logger instead of the package-level
// default.
func WithLogger(l log.Logger) Option {
	return func(c *Circuit) { c.logger = l }
}

// New returns an empty circuit.
func New(opts ...Option) *Circuit {
	c := &Circuit{
		id:       uuid.NewString(),
		g:        multi.NewUndirectedGraph(),
		branches: make(map[BranchKey]*Branch),
		lineIDs:  make(map[BranchKey]int64),
		state:    Empty,
		solver:   solve.Exact{},
		logger:   log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build constructs a circuit from a branch list, solving after each
// insertion. The first invalid branch aborts construction.
func Build(specs []BranchSpec, opts ...Option) (*Circuit, error) {
	c := New(opts...)
	for _, s := range specs {
		if err := c.AddBranch(s.A, s.B, s.Components); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ID returns the circuit's unique identifier.
func (c *Circuit) ID() string { return c.id }

// AddBranch validates and inserts a new branch between a and b, under the
// next unused parallel index for that node pair, then recomputes the mesh
// set and re-solves. components must hold exactly two of R, V and I; the
// missing one becomes the branch's unknown. A validation failure leaves the
// circuit completely unchanged.
func (c *Circuit) AddBranch(a, b Node, components map[Component]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a >= b {
		return &OrderError{A: a, B: b}
	}
	unknown, err := unknownOf(components)
	if err != nil {
		return err
	}
	br := &Branch{R: expr.NaN(), V: expr.NaN(), I: expr.NaN(), Unknown: unknown}
	for comp, raw := range components {
		e, perr := expr.Parse(raw)
		if perr != nil {
			return &ValidationError{Reason: fmt.Sprintf("component %s: %v", comp, perr)}
		}
		br.set(comp, e)
	}

	key := BranchKey{A: a, B: b, Index: c.nextIndex(a, b)}
	c.addNode(a)
	c.addNode(b)
	uid := c.nextLine
	c.nextLine++
	c.g.SetLine(multi.Line{F: multi.Node(a), T: multi.Node(b), UID: uid})
	c.lineIDs[key] = uid
	c.branches[key] = br

	c.logger.Debug("circuit %s: add branch %s, unknown %s", c.id, key, unknown)
	c.refresh()
	return nil
}

// DelBranch removes the branch with the exact key (a, b, index), then
// recomputes the mesh set and re-solves. Endpoint nodes left without any
// incident branch are dropped from the node set, so inserting and removing
// the same branch restores the prior circuit exactly.
func (c *Circuit) DelBranch(a, b Node, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := BranchKey{A: a, B: b, Index: index}
	if _, ok := c.branches[key]; !ok {
		return &NotFoundError{Key: key}
	}
	c.g.RemoveLine(int64(a), int64(b), c.lineIDs[key])
	delete(c.branches, key)
	delete(c.lineIDs, key)
	c.pruneNode(a)
	c.pruneNode(b)

	c.logger.Debug("circuit %s: del branch %s", c.id, key)
	c.refresh()
	return nil
}

// Nodes returns a snapshot of the node identifiers in insertion order.
func (c *Circuit) Nodes() []Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Node(nil), c.order...)
}

// Branches returns a snapshot of every branch keyed by its identity.
func (c *Circuit) Branches() map[BranchKey]Branch {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[BranchKey]Branch, len(c.branches))
	for k, br := range c.branches {
		out[k] = *br
	}
	return out
}

// Meshes returns a snapshot of the current independent loop set.
func (c *Circuit) Meshes() []Mesh {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Mesh, len(c.meshes))
	for i, m := range c.meshes {
		out[i] = append(Mesh(nil), m...)
	}
	return out
}

// Solved reports whether the last solve found a unique solution.
func (c *Circuit) Solved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Solved
}

// State reports the solve outcome for the current topology.
func (c *Circuit) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PotentialDiff returns V_a − V_b, computed along a shortest path between
// the nodes: every branch traversed low→high contributes +V − I·R and every
// branch traversed high→low contributes −V + I·R. It returns a
// DisconnectedError when no path connects a and b. The result is only
// meaningful on a solved circuit; on an indeterminate one the NaN markers
// propagate into the returned value.
func (c *Circuit) PotentialDiff(a, b Node) (expr.Expr, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	na, nb := c.g.Node(int64(a)), c.g.Node(int64(b))
	if na == nil || nb == nil {
		return expr.Expr{}, &DisconnectedError{A: a, B: b}
	}
	shortest := path.DijkstraFrom(nb, c.g)
	walk, weight := shortest.To(int64(a))
	if len(walk) == 0 || math.IsInf(weight, 1) {
		return expr.Expr{}, &DisconnectedError{A: a, B: b}
	}

	diff := expr.Zero()
	for i := 1; i < len(walk); i++ {
		u, w := Node(walk[i-1].ID()), Node(walk[i].ID())
		lo, hi, rev := u, w, false
		if u > w {
			lo, hi, rev = w, u, true
		}
		br := c.branches[BranchKey{A: lo, B: hi, Index: c.lowestIndex(lo, hi)}]
		drop := br.V.Sub(br.I.Mul(br.R))
		if rev {
			diff = diff.Sub(drop)
		} else {
			diff = diff.Add(drop)
		}
	}
	return diff, nil
}

// refresh rebuilds the derived state after a successful mutation: the mesh
// list and the Kirchhoff solution are always recomputed from scratch.
func (c *Circuit) refresh() {
	prev := c.state
	c.recomputeMeshes()
	c.resolve()
	if c.state != prev {
		c.logger.Info("circuit %s: %s -> %s (%d branches, %d meshes)",
			c.id, prev, c.state, len(c.branches), len(c.meshes))
	}
}

// nextIndex returns the smallest parallel index not in use between a and b.
func (c *Circuit) nextIndex(a, b Node) int {
	idx := 0
	for {
		if _, ok := c.branches[BranchKey{A: a, B: b, Index: idx}]; !ok {
			return idx
		}
		idx++
	}
}

func (c *Circuit) addNode(n Node) {
	if c.g.Node(int64(n)) != nil {
		return
	}
	c.g.AddNode(multi.Node(n))
	c.order = append(c.order, n)
}

// pruneNode drops n when no branch touches it anymore.
func (c *Circuit) pruneNode(n Node) {
	for k := range c.branches {
		if k.A == n || k.B == n {
			return
		}
	}
	if c.g.Node(int64(n)) != nil {
		c.g.RemoveNode(int64(n))
	}
	for i, o := range c.order {
		if o == n {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// sortedKeys returns the branch keys in deterministic (A, B, Index) order;
// this order defines the unknown columns of the assembled system.
func (c *Circuit) sortedKeys() []BranchKey {
	keys := make([]BranchKey, 0, len(c.branches))
	for k := range c.branches {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}
