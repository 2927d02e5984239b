package todoboard

// Todo is a single task on the board.
//
// Todo is a value copy; changing it does not affect the board.
type Todo struct {
	// ID is the opaque identifier assigned by the board on creation.
	ID string

	// Title is the text as submitted, stored verbatim.
	Title string

	// Done reports whether the todo has been checked off.
	Done bool
}

// ChangeKind identifies the mutation that produced a [Change].
type ChangeKind string

const (
	// ChangeCreated indicates a todo was appended to the board.
	ChangeCreated ChangeKind = "created"

	// ChangeUpdated indicates a todo's done flag was set.
	// It is emitted even when the flag already had the requested value.
	ChangeUpdated ChangeKind = "updated"
)

// String returns the string representation of the kind.
func (k ChangeKind) String() string {
	return string(k)
}

// Change describes a completed mutation of the board.
//
// Todo holds the state of the affected record immediately after the
// mutation. Toggles of unknown ids do not produce a Change.
type Change struct {
	Kind ChangeKind
	Todo Todo
}
