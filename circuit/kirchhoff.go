package circuit

import (
	"gonum.org/v1/gonum/graph/topo"

	"github.com/smallnest/kirchgo/expr"
	"github.com/smallnest/kirchgo/solve"
)

// resolve assembles the Kirchhoff equation system for the current graph and
// mesh set, solves it, and writes the results back into the branches. The
// system is square: one unknown scalar per branch, with current-law rows for
// every node except one reference per connected component, and voltage-law
// rows for every mesh.
func (c *Circuit) resolve() {
	keys := c.sortedKeys()
	n := len(keys)
	if n == 0 {
		c.state = Empty
		return
	}

	sys := solve.NewSystem(n)
	row := 0

	// Current law: the signed sum of currents meeting at a node is zero.
	// A branch entering through its high end counts positive, through its
	// low end negative; known currents move to the constant term.
	for _, node := range c.currentLawNodes() {
		for j, k := range keys {
			br := c.branches[k]
			if k.B == node {
				if br.Unknown == I {
					sys.A[row][j] = expr.One()
				} else {
					sys.B[row] = sys.B[row].Sub(br.I)
				}
			}
			if k.A == node {
				if br.Unknown == I {
					sys.A[row][j] = expr.One().Neg()
				} else {
					sys.B[row] = sys.B[row].Add(br.I)
				}
			}
		}
		row++
	}

	// Voltage law: the directed sum of voltage drops around each mesh is
	// zero. Coefficients depend on which quantity is the branch's unknown
	// and on the traversal direction relative to the branch's own low→high
	// orientation.
	for _, mesh := range c.meshes {
		for j, k := range keys {
			br := c.branches[k]
			direct, reverse := mesh.traverses(k)
			if direct {
				switch br.Unknown {
				case I:
					sys.A[row][j] = br.R.Neg()
					sys.B[row] = sys.B[row].Sub(br.V)
				case V:
					sys.A[row][j] = expr.One()
					sys.B[row] = sys.B[row].Add(br.R.Mul(br.I))
				case R:
					sys.A[row][j] = br.I.Neg()
					sys.B[row] = sys.B[row].Sub(br.V)
				}
			}
			if reverse {
				switch br.Unknown {
				case I:
					sys.A[row][j] = br.R
					sys.B[row] = sys.B[row].Add(br.V)
				case V:
					sys.A[row][j] = expr.One().Neg()
					sys.B[row] = sys.B[row].Sub(br.R.Mul(br.I))
				case R:
					sys.A[row][j] = br.I
					sys.B[row] = sys.B[row].Add(br.V)
				}
			}
		}
		row++
	}

	sol, err := c.solver.Solve(sys)
	if err != nil {
		c.logger.Warn("circuit %s: solver cannot handle system: %v", c.id, err)
		c.markUnsolved(keys)
		c.state = Indeterminate
		return
	}

	switch sol.Outcome {
	case solve.Unique:
		for j, k := range keys {
			br := c.branches[k]
			br.set(br.Unknown, sol.Values[j])
		}
		c.state = Solved
	case solve.Underdetermined:
		c.markUnsolved(keys)
		c.state = Underdetermined
	default:
		c.markUnsolved(keys)
		c.state = Indeterminate
	}
	c.logger.Debug("circuit %s: solve outcome %s over %d equations", c.id, sol.Outcome, n)
}

// markUnsolved writes the NaN marker into every branch's unknown slot.
func (c *Circuit) markUnsolved(keys []BranchKey) {
	for _, k := range keys {
		br := c.branches[k]
		br.set(br.Unknown, expr.NaN())
	}
}

// currentLawNodes returns, in insertion order, every node except the last
// inserted node of each connected component. Skipping one reference node per
// component avoids the redundant current-law row that would make the system
// singular.
func (c *Circuit) currentLawNodes() []Node {
	comp := make(map[Node]int, len(c.order))
	for ci, nodes := range topo.ConnectedComponents(c.g) {
		for _, n := range nodes {
			comp[Node(n.ID())] = ci
		}
	}
	reference := make(map[int]Node, len(c.order))
	for _, n := range c.order {
		reference[comp[n]] = n
	}
	out := make([]Node, 0, len(c.order))
	for _, n := range c.order {
		if reference[comp[n]] != n {
			out = append(out, n)
		}
	}
	return out
}
