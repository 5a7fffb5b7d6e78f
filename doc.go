// Kirchgo - Exact DC Circuit Solving in Go
//
// Kirchgo models DC electrical circuits as undirected multigraphs and solves
// them with Kirchhoff's current and voltage laws. Every branch carries a
// resistance, a source voltage and a current; exactly one of the three is the
// unknown, and the package solves all unknowns exactly, numerically or
// symbolically, after every topology change.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/kirchgo
//
// Basic example:
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/smallnest/kirchgo/circuit"
//	)
//
//	func main() {
//		// A 10 V source driving a 5 kΩ resistor.
//		c, err := circuit.Build([]circuit.BranchSpec{
//			{A: 1, B: 2, Components: map[circuit.Component]any{circuit.V: 10, circuit.R: 0}},
//			{A: 1, B: 2, Components: map[circuit.Component]any{circuit.R: 5, circuit.V: 0}},
//		})
//		if err != nil {
//			panic(err)
//		}
//
//		for key, br := range c.Branches() {
//			fmt.Printf("%s: I = %s mA\n", key, br.I)
//		}
//	}
//
// # Key Features
//
//   - Exact Arithmetic: solutions are big.Rat rationals, never floats
//   - Symbolic Values: component values may be free symbols ("v", "r")
//   - Incremental Solving: every add or delete re-solves the whole circuit
//   - Mesh Discovery: independent loops found from the graph's cycle basis
//   - Snapshots: persist and restore circuits via memory or SQLite stores
//   - Netlists: load and save circuits as YAML
//
// # Package Layout
//
//   - circuit: the Circuit type, branches, meshes and the Kirchhoff solver
//   - expr: exact numeric and symbolic expression values
//   - solve: linear-system backends (exact rational, float via gonum/mat)
//   - store: snapshot persistence interfaces and backends
//   - netlist: YAML netlist reading and writing
//   - log: leveled logging facade used across the module
package kirchgo
