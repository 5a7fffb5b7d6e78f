// Package circuit models and solves DC electrical circuits.
//
// A circuit is an undirected multigraph: nodes are junctions and every edge
// is a branch carrying a resistance R (kΩ), a source voltage V (V) and a
// current I (mA). Exactly one of the three is left unspecified per branch
// and becomes that branch's unknown. After every topology change the package
// assembles the Kirchhoff current and voltage law equations and solves them,
// writing the unique solution back into the branches or marking them NaN
// when no unique solution exists.
//
// Branch endpoints must be given in ascending node order; that order fixes
// the sign convention, with positive V and I pointing from the lower node
// toward the higher one. Parallel branches between the same node pair are
// distinguished by an integer slot index assigned at insertion.
//
// # Basic Usage
//
//	c, err := circuit.Build([]circuit.BranchSpec{
//		{A: 1, B: 2, Components: map[circuit.Component]any{circuit.V: 10, circuit.R: 0}},
//		{A: 1, B: 2, Components: map[circuit.Component]any{circuit.R: 5, circuit.V: 0}},
//	})
//	if err != nil {
//		return err
//	}
//	if c.Solved() {
//		for key, br := range c.Branches() {
//			fmt.Printf("%s I = %s\n", key, br.I)
//		}
//	}
//
// Component values accept Go numbers, *big.Rat and strings; a string that is
// not a number becomes a symbol, so circuits can be solved symbolically:
//
//	c, _ := circuit.Build([]circuit.BranchSpec{
//		{A: 1, B: 2, Components: map[circuit.Component]any{circuit.V: "v", circuit.R: 0}},
//		{A: 1, B: 2, Components: map[circuit.Component]any{circuit.R: "r", circuit.V: 0}},
//	})
//	// the resistor current solves to v/r
//
// # Solve States
//
// State reports the outcome for the current topology. Solved means every
// unknown holds its unique value. Indeterminate means the equations are
// contradictory. Underdetermined means they admit a family of solutions; no
// member is picked. In both failure states the unknowns hold NaN, and the
// next successful mutation re-solves from scratch.
package circuit
