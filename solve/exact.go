package solve

import (
	"github.com/smallnest/kirchgo/expr"
)

// Exact solves systems by Gaussian elimination in exact expr arithmetic.
// Numeric entries are handled with rational arithmetic and no rounding;
// symbolic entries are carried through elimination, with symbolic pivots
// treated as generically nonzero (a pivot that is identically zero is never
// used). This is the default backend for circuit solving.
type Exact struct{}

var _ Solver = Exact{}

// Solve classifies and, for full-rank systems, solves sys.
func (Exact) Solve(sys *System) (Solution, error) {
	n := sys.Size()
	a := make([][]expr.Expr, n)
	for i := range a {
		a[i] = append([]expr.Expr(nil), sys.A[i]...)
	}
	b := append([]expr.Expr(nil), sys.B...)

	// Forward elimination with column pivoting. Columns with no usable
	// pivot are left as free columns.
	rank := 0
	for col := 0; col < n && rank < n; col++ {
		p := pivotRow(a, rank, col)
		if p < 0 {
			continue
		}
		a[rank], a[p] = a[p], a[rank]
		b[rank], b[p] = b[p], b[rank]
		for r := rank + 1; r < n; r++ {
			if a[r][col].IsZero() {
				continue
			}
			f := a[r][col].Div(a[rank][col])
			for c := col; c < n; c++ {
				a[r][c] = a[r][c].Sub(f.Mul(a[rank][c]))
			}
			b[r] = b[r].Sub(f.Mul(b[rank]))
		}
		rank++
	}

	for r := rank; r < n; r++ {
		if !b[r].IsZero() {
			return Solution{Outcome: Inconsistent}, nil
		}
	}
	if rank < n {
		return Solution{Outcome: Underdetermined}, nil
	}

	x := make([]expr.Expr, n)
	for r := n - 1; r >= 0; r-- {
		acc := b[r]
		for c := r + 1; c < n; c++ {
			acc = acc.Sub(a[r][c].Mul(x[c]))
		}
		x[r] = acc.Div(a[r][r])
	}
	return Solution{Outcome: Unique, Values: x}, nil
}

// pivotRow picks a row at or below from with a nonzero entry in col,
// preferring plain numeric entries over symbolic ones.
func pivotRow(a [][]expr.Expr, from, col int) int {
	symbolic := -1
	for r := from; r < len(a); r++ {
		e := a[r][col]
		if e.IsZero() {
			continue
		}
		if e.IsNum() {
			return r
		}
		if symbolic < 0 {
			symbolic = r
		}
	}
	return symbolic
}
