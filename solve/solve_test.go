package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/kirchgo/expr"
)

func numSystem(a [][]int64, b []int64) *System {
	sys := NewSystem(len(b))
	for i := range a {
		for j := range a[i] {
			sys.A[i][j] = expr.FromInt(a[i][j])
		}
		sys.B[i] = expr.FromInt(b[i])
	}
	return sys
}

func TestExactUnique(t *testing.T) {
	t.Parallel()

	// 2x + y = 5, x - y = 1  =>  x = 2, y = 1
	sys := numSystem([][]int64{{2, 1}, {1, -1}}, []int64{5, 1})
	sol, err := Exact{}.Solve(sys)
	require.NoError(t, err)
	require.Equal(t, Unique, sol.Outcome)
	assert.Equal(t, "2", sol.Values[0].String())
	assert.Equal(t, "1", sol.Values[1].String())
}

func TestExactClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    [][]int64
		b    []int64
		want Outcome
	}{
		{name: "inconsistent", a: [][]int64{{1, 1}, {1, 1}}, b: []int64{1, 2}, want: Inconsistent},
		{name: "underdetermined", a: [][]int64{{1, 1}, {2, 2}}, b: []int64{1, 2}, want: Underdetermined},
		{name: "zero row zero rhs", a: [][]int64{{1, 0}, {0, 0}}, b: []int64{1, 0}, want: Underdetermined},
		{name: "zero row nonzero rhs", a: [][]int64{{0, 0}, {0, 1}}, b: []int64{3, 1}, want: Inconsistent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sol, err := Exact{}.Solve(numSystem(tt.a, tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, sol.Outcome)
			assert.Nil(t, sol.Values)
		})
	}
}

func TestExactSymbolic(t *testing.T) {
	t.Parallel()

	// a·x = a  =>  x = 1 for generic (nonzero) a.
	sys := NewSystem(1)
	sys.A[0][0] = expr.Sym("a")
	sys.B[0] = expr.Sym("a")
	sol, err := Exact{}.Solve(sys)
	require.NoError(t, err)
	require.Equal(t, Unique, sol.Outcome)
	assert.Equal(t, "1", sol.Values[0].String())

	// r·x = v  =>  x = v/r.
	sys = NewSystem(1)
	sys.A[0][0] = expr.Sym("r")
	sys.B[0] = expr.Sym("v")
	sol, err = Exact{}.Solve(sys)
	require.NoError(t, err)
	require.Equal(t, Unique, sol.Outcome)
	assert.Equal(t, "v/r", sol.Values[0].String())
}

func TestExactPrefersNumericPivot(t *testing.T) {
	t.Parallel()

	// First row has a symbolic leading entry, second row a numeric one; the
	// numeric pivot keeps the elimination free of needless symbolic ratios.
	sys := NewSystem(2)
	sys.A[0][0] = expr.Sym("a")
	sys.A[0][1] = expr.Zero()
	sys.A[1][0] = expr.FromInt(1)
	sys.A[1][1] = expr.FromInt(1)
	sys.B[0] = expr.Sym("a")
	sys.B[1] = expr.FromInt(3)
	sol, err := Exact{}.Solve(sys)
	require.NoError(t, err)
	require.Equal(t, Unique, sol.Outcome)
	assert.Equal(t, "1", sol.Values[0].String())
	assert.Equal(t, "2", sol.Values[1].String())
}

func TestFloatUnique(t *testing.T) {
	t.Parallel()

	sys := numSystem([][]int64{{2, 1}, {1, -1}}, []int64{5, 1})
	sol, err := Float{}.Solve(sys)
	require.NoError(t, err)
	require.Equal(t, Unique, sol.Outcome)

	x, ok := sol.Values[0].Float64()
	require.True(t, ok)
	y, ok := sol.Values[1].Float64()
	require.True(t, ok)
	assert.InDelta(t, 2, x, 1e-12)
	assert.InDelta(t, 1, y, 1e-12)
}

func TestFloatClassification(t *testing.T) {
	t.Parallel()

	sol, err := Float{}.Solve(numSystem([][]int64{{1, 1}, {1, 1}}, []int64{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, Inconsistent, sol.Outcome)

	sol, err = Float{}.Solve(numSystem([][]int64{{1, 1}, {2, 2}}, []int64{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, Underdetermined, sol.Outcome)
}

func TestFloatRejectsSymbolic(t *testing.T) {
	t.Parallel()

	sys := NewSystem(1)
	sys.A[0][0] = expr.Sym("r")
	sys.B[0] = expr.FromInt(1)
	_, err := Float{}.Solve(sys)
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestAgreementOnNumericSystems(t *testing.T) {
	t.Parallel()

	sys := numSystem([][]int64{{3, 2, -1}, {2, -2, 4}, {-1, 1, -1}}, []int64{1, -2, 0})
	exact, err := Exact{}.Solve(sys)
	require.NoError(t, err)
	flt, err := Float{}.Solve(sys)
	require.NoError(t, err)
	require.Equal(t, Unique, exact.Outcome)
	require.Equal(t, Unique, flt.Outcome)
	for i := range exact.Values {
		e, ok := exact.Values[i].Float64()
		require.True(t, ok)
		f, ok := flt.Values[i].Float64()
		require.True(t, ok)
		assert.InDelta(t, e, f, 1e-9)
	}
}
