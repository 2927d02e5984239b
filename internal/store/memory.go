package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// subscriberBuffer is the channel capacity given to each subscriber.
const subscriberBuffer = 100

// MemoryStore is an in-memory implementation of [Store].
//
// Todos are kept in a slice in insertion order. Reads take the shared lock,
// mutations take the exclusive lock for the duration of the mutation only;
// subscribers are notified after the lock is released.
type MemoryStore struct {
	mu          sync.RWMutex
	todos       []Todo
	subscribers map[chan Change]bool
	subMu       sync.RWMutex
	newID       func() string
}

// NewMemoryStore creates a new, empty in-memory [Store].
//
// Ids are random UUIDv4 strings.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		todos:       make([]Todo, 0),
		subscribers: make(map[chan Change]bool),
		newID:       uuid.NewString,
	}
}

// List returns a snapshot of all todos in insertion order.
//
// The returned slice is a copy and is never nil.
func (m *MemoryStore) List() []Todo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todos := make([]Todo, len(m.todos))
	copy(todos, m.todos)
	return todos
}

// Get returns the todo with the given id, if present.
func (m *MemoryStore) Get(id string) (Todo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return m.todos[i], true
	}
	return Todo{}, false
}

// Len returns the number of stored todos.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.todos)
}

// Create appends a todo with the given title and notifies subscribers.
//
// The title is stored exactly as given; only the empty string is rejected.
func (m *MemoryStore) Create(title string) (Todo, error) {
	if title == "" {
		return Todo{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	todo := Todo{ID: m.newID(), Title: title}

	m.mu.Lock()
	m.todos = append(m.todos, todo)
	m.mu.Unlock()

	m.notifySubscribers(Change{Kind: ChangeCreated, Todo: todo})
	return todo, nil
}

// SetDone updates the done flag of the matching todo and notifies subscribers.
//
// An unknown id is not an error: SetDone returns false and nothing changes.
// Setting a todo to the value it already has still counts as a match.
func (m *MemoryStore) SetDone(id string, done bool) bool {
	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.todos[i].Done = done
	todo := m.todos[i]
	m.mu.Unlock()

	m.notifySubscribers(Change{Kind: ChangeUpdated, Todo: todo})
	return true
}

// indexOf returns the position of id in m.todos, or -1.
// Caller must hold m.mu.
func (m *MemoryStore) indexOf(id string) int {
	for i := range m.todos {
		if m.todos[i].ID == id {
			return i
		}
	}
	return -1
}

// Subscribe creates a new subscription and returns a channel for receiving changes.
//
// The returned channel has a buffer of 100 messages. If the buffer fills
// (slow consumer), new changes are dropped for this subscriber.
//
// Caller must call [MemoryStore.Unsubscribe] when done to prevent resource leaks.
func (m *MemoryStore) Subscribe() <-chan Change {
	return m.subscribe(false)
}

// SubscribeLossless is like [MemoryStore.Subscribe] but never drops a change.
//
// Once the 100 message buffer is full, mutations wait for the subscriber to
// catch up. The subscriber must keep receiving until the channel is closed
// by [MemoryStore.Unsubscribe].
func (m *MemoryStore) SubscribeLossless() <-chan Change {
	return m.subscribe(true)
}

func (m *MemoryStore) subscribe(lossless bool) <-chan Change {
	ch := make(chan Change, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = lossless
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// Safe to call multiple times or with an unknown channel.
func (m *MemoryStore) Unsubscribe(ch <-chan Change) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the change to all active subscribers. Lossy
// subscribers never block the caller; lossless ones do while their buffer
// is full.
func (m *MemoryStore) notifySubscribers(change Change) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch, lossless := range m.subscribers {
		if lossless {
			ch <- change
			continue
		}
		select {
		case ch <- change:
		default:
			// subscriber is slow, drop the change
		}
	}
}
