package solve

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/smallnest/kirchgo/expr"
)

// ErrNotNumeric is returned by Float when the system contains symbolic
// entries. Callers solving symbolic circuits need the Exact backend.
var ErrNotNumeric = errors.New("solve: system contains symbolic entries")

// Float solves all-numeric systems with gonum dense linear algebra. Rank is
// established from singular values, so singular and rank-deficient systems
// are classified instead of blowing up in the factorization.
type Float struct {
	// Tol overrides the singular-value cutoff. Zero means an automatic
	// cutoff scaled from the largest singular value.
	Tol float64
}

var _ Solver = Float{}

// Solve classifies and, for full-rank systems, solves sys.
func (f Float) Solve(sys *System) (Solution, error) {
	n := sys.Size()
	if n == 0 {
		return Solution{Outcome: Unique}, nil
	}
	aData := make([]float64, 0, n*n)
	augData := make([]float64, 0, n*(n+1))
	bData := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		bi, ok := sys.B[i].Float64()
		if !ok {
			return Solution{}, ErrNotNumeric
		}
		bData = append(bData, bi)
		for j := 0; j < n; j++ {
			v, ok := sys.A[i][j].Float64()
			if !ok {
				return Solution{}, ErrNotNumeric
			}
			aData = append(aData, v)
			augData = append(augData, v)
		}
		augData = append(augData, bi)
	}

	a := mat.NewDense(n, n, aData)
	aug := mat.NewDense(n, n+1, augData)

	rankA, err := f.rank(a)
	if err != nil {
		return Solution{}, err
	}
	if rankA < n {
		rankAug, err := f.rank(aug)
		if err != nil {
			return Solution{}, err
		}
		if rankAug > rankA {
			return Solution{Outcome: Inconsistent}, nil
		}
		return Solution{Outcome: Underdetermined}, nil
	}

	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(n, bData)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return Solution{}, err
		}
		// Ill-conditioned but full rank by the SVD cutoff: keep the result.
	}
	values := make([]expr.Expr, n)
	for i := range values {
		values[i] = expr.FromFloat(x.AtVec(i))
	}
	return Solution{Outcome: Unique, Values: values}, nil
}

func (f Float) rank(m mat.Matrix) (int, error) {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return 0, errors.New("solve: SVD factorization failed")
	}
	sv := svd.Values(nil)
	if len(sv) == 0 {
		return 0, nil
	}
	tol := f.Tol
	if tol == 0 {
		r, c := m.Dims()
		tol = float64(max(r, c)) * sv[0] * 2.220446049250313e-16
	}
	rank := 0
	for _, s := range sv {
		if s > tol && !math.IsNaN(s) {
			rank++
		}
	}
	return rank, nil
}
