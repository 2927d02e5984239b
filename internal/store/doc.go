// Package store provides in-memory storage and change notification for todos.
//
// This package is internal to TodoBoard and owns the board's only shared
// mutable state: the ordered list of todo records. Insertion order is
// display order, and records are never removed.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//   - [Todo]: Storage representation of a single todo item
//   - [Change]: Notification emitted after every successful mutation
//
// The store uses a single-writer/multi-reader lock. Subscribers receive
// changes via channels with non-blocking sends (slow subscribers will miss
// changes rather than block writers).
package store
