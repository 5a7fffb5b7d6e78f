package circuit

import (
	"fmt"

	"github.com/smallnest/kirchgo/expr"
)

// Node identifies a circuit node. Nodes are totally ordered, and the
// ascending order between the two endpoints of a branch fixes the positive
// direction for the branch's voltage and current sign conventions: a
// positive V or I points from the lower node toward the higher one.
type Node int

// Component names one of the three electrical quantities a branch carries.
type Component int

const (
	// R is the total resistance inside the branch (kΩ).
	R Component = iota
	// V is the potential difference of the branch's sources (V).
	V
	// I is the current through the branch (mA).
	I
)

// String returns the component letter.
func (c Component) String() string {
	switch c {
	case R:
		return "R"
	case V:
		return "V"
	case I:
		return "I"
	default:
		return fmt.Sprintf("Component(%d)", int(c))
	}
}

// ParseComponent maps a component letter back to its Component.
func ParseComponent(s string) (Component, error) {
	switch s {
	case "R", "r":
		return R, nil
	case "V", "v":
		return V, nil
	case "I", "i":
		return I, nil
	default:
		return 0, fmt.Errorf("circuit: unknown component %q", s)
	}
}

// BranchKey identifies a branch by its ordered endpoints and parallel slot.
// A < B always holds; Index distinguishes parallel branches between the same
// node pair.
type BranchKey struct {
	A, B  Node
	Index int
}

// String returns the key in (A,B,Index) form.
func (k BranchKey) String() string {
	return fmt.Sprintf("(%d,%d,%d)", k.A, k.B, k.Index)
}

func (k BranchKey) less(o BranchKey) bool {
	if k.A != o.A {
		return k.A < o.A
	}
	if k.B != o.B {
		return k.B < o.B
	}
	return k.Index < o.Index
}

// Branch holds the three quantities of a two-terminal circuit element plus
// the tag naming which one is the unknown. The two known quantities are set
// at insertion; the unknown one is written by the solver, or holds NaN when
// the circuit has no unique solution.
type Branch struct {
	R, V, I expr.Expr
	Unknown Component
}

// Value returns the quantity named by c.
func (b Branch) Value(c Component) expr.Expr {
	switch c {
	case R:
		return b.R
	case V:
		return b.V
	default:
		return b.I
	}
}

func (b *Branch) set(c Component, e expr.Expr) {
	switch c {
	case R:
		b.R = e
	case V:
		b.V = e
	case I:
		b.I = e
	}
}

// BranchSpec describes one branch for Build: the endpoints and the two known
// component values. Values are normalized with expr.Parse, so numeric Go
// values and symbol strings are accepted uniformly.
type BranchSpec struct {
	A, B       Node
	Components map[Component]any
}

// unknownOf validates the supplied component set and returns the missing
// quantity, which becomes the branch's unknown.
func unknownOf(components map[Component]any) (Component, error) {
	if len(components) != 2 {
		return 0, &ValidationError{Reason: fmt.Sprintf(
			"%d components supplied; exactly two of R, V, I are required, leaving one unknown", len(components))}
	}
	seen := [3]bool{}
	for c := range components {
		if c < R || c > I {
			return 0, &ValidationError{Reason: fmt.Sprintf("unrecognized component %s", c)}
		}
		seen[c] = true
	}
	for _, c := range []Component{R, V, I} {
		if !seen[c] {
			return c, nil
		}
	}
	return 0, &ValidationError{Reason: "duplicate component keys"}
}
