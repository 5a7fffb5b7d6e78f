// Package netlist reads and writes circuits as YAML netlists.
//
// A netlist is a list of branch entries:
//
//	- a: 1
//	  b: 2
//	  v: 10
//	  r: 0
//	- a: 1
//	  b: 2
//	  r: 5
//	  v: 0
//
// Each entry names its endpoints and exactly two of the r, v, i quantities;
// the absent one is solved for. Values may be numbers or symbol names, as
// accepted by circuit.AddBranch.
package netlist
