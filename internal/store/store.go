package store

import "errors"

// ErrInvalidInput is returned when a mutation receives unusable input,
// such as an empty title.
var ErrInvalidInput = errors.New("invalid input")

// Todo is a single task record.
//
// ID is assigned by the store on creation and never changes.
type Todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// ChangeKind identifies which mutation produced a [Change].
type ChangeKind string

const (
	// ChangeCreated is emitted after a todo is appended.
	ChangeCreated ChangeKind = "created"

	// ChangeUpdated is emitted after a todo's done flag is set.
	ChangeUpdated ChangeKind = "updated"
)

// Change describes a completed mutation. Todo holds the record's state
// immediately after the mutation.
type Change struct {
	Kind ChangeKind `json:"kind"`
	Todo Todo       `json:"todo"`
}

// Store defines the interface for storing todos and subscribing to changes.
//
// Store implementations must be safe for concurrent access.
type Store interface {
	// List returns all todos in insertion order.
	// The returned slice is a snapshot; modifications do not affect the store.
	List() []Todo

	// Get returns the todo with the given id.
	Get(id string) (Todo, bool)

	// Create appends a new todo with a fresh id and done=false.
	// Returns ErrInvalidInput if title is empty.
	Create(title string) (Todo, error)

	// SetDone sets the done flag of the todo with the given id.
	// Returns false, leaving the store unchanged, if no todo matches.
	SetDone(id string, done bool) bool

	// Subscribe returns a channel that receives changes.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan Change

	// SubscribeLossless returns a channel that receives every change.
	// Mutations block while the subscriber's buffer is full.
	SubscribeLossless() <-chan Change

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan Change)
}
