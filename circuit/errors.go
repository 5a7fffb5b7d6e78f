package circuit

import "fmt"

// OrderError is returned when a branch's endpoints violate the required
// ascending node order.
type OrderError struct {
	A, B Node
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("circuit: branch (%d,%d) does not satisfy the order A < B between nodes", e.A, e.B)
}

// ValidationError is returned when a branch's component set does not leave
// exactly one unknown among R, V and I, or a component value cannot be
// normalized.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "circuit: invalid branch components: " + e.Reason
}

// NotFoundError is returned when a removal references a branch key that is
// not present.
type NotFoundError struct {
	Key BranchKey
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("circuit: branch %s not found", e.Key)
}

// DisconnectedError is returned by PotentialDiff when no path connects the
// two nodes.
type DisconnectedError struct {
	A, B Node
}

func (e *DisconnectedError) Error() string {
	return fmt.Sprintf("circuit: no path between nodes %d and %d", e.A, e.B)
}
