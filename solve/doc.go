// Package solve provides the linear-system capability behind circuit
// solving: a square System of expr entries and Solver backends that classify
// the solution set as unique, inconsistent, or underdetermined.
//
// Two backends are provided. Exact performs Gaussian elimination in exact
// rational/symbolic arithmetic and handles every system the circuit
// assembler can produce; it is the default. Float uses gonum dense linear
// algebra and serves all-numeric circuits where float64 results are enough.
package solve
