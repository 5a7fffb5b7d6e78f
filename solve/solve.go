package solve

import (
	"fmt"

	"github.com/smallnest/kirchgo/expr"
)

// Outcome classifies the solution set of a linear system.
type Outcome int

const (
	// Unique means the system has exactly one solution.
	Unique Outcome = iota
	// Inconsistent means the system has no solution.
	Inconsistent
	// Underdetermined means the system is consistent but has free variables.
	Underdetermined
)

// String returns the string representation of an Outcome.
func (o Outcome) String() string {
	switch o {
	case Unique:
		return "unique"
	case Inconsistent:
		return "inconsistent"
	case Underdetermined:
		return "underdetermined"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// System is a square linear system A·X = B with one unknown per column.
// Entries are expr values and may be symbolic.
type System struct {
	A [][]expr.Expr
	B []expr.Expr
}

// NewSystem returns an n×n system with all entries zero.
func NewSystem(n int) *System {
	a := make([][]expr.Expr, n)
	for i := range a {
		a[i] = make([]expr.Expr, n)
	}
	return &System{A: a, B: make([]expr.Expr, n)}
}

// Size returns the number of equations (and unknowns).
func (s *System) Size() int { return len(s.B) }

// Solution is the result of solving a System. Values is populated only for
// a Unique outcome, one value per unknown in column order.
type Solution struct {
	Outcome Outcome
	Values  []expr.Expr
}

// Solver solves a square linear system. An error reports that the backend
// cannot handle the system at all (for example, symbolic entries given to a
// numeric-only backend); an unsolvable but well-formed system is reported
// through the Outcome, not an error.
type Solver interface {
	Solve(sys *System) (Solution, error)
}
