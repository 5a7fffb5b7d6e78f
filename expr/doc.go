// Package expr implements the exact value arithmetic the circuit solver
// works in: rational numbers, free symbols, and ratios of polynomials over
// them, with a NaN marker for indeterminate results.
//
// Branch components are normalized into Expr values on insertion via Parse,
// which accepts Go numeric types and strings uniformly:
//
//	r, _ := expr.Parse("1/2")  // exact rational
//	v, _ := expr.Parse(10)     // integer
//	s, _ := expr.Parse("v_in") // free symbol
//
// All arithmetic is exact (math/big.Rat coefficients, no floating point), so
// the linear systems assembled from Kirchhoff's laws are solved without
// rounding error even when component values are symbolic.
package expr
