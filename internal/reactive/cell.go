package reactive

import (
	"slices"
	"sync"
)

// Cell holds a mutable value and notifies subscribers when it changes.
// All notification happens synchronously on the goroutine calling Set.
type Cell[T any] struct {
	mu     sync.Mutex
	value  T
	eq     func(old, next T) bool
	nextID int
	subs   map[int]func(T)
}

// New creates a cell for a comparable value. Set skips notification when the
// new value == the old one.
func New[T comparable](initial T) *Cell[T] {
	return NewFunc(initial, func(old, next T) bool { return old == next })
}

// NewFunc creates a cell with a custom equality predicate. A nil predicate
// means every Set notifies.
func NewFunc[T any](initial T, eq func(old, next T) bool) *Cell[T] {
	return &Cell[T]{
		value: initial,
		eq:    eq,
		subs:  make(map[int]func(T)),
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the value and notifies subscribers, unless the equality
// predicate reports the value as unchanged.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	if c.eq != nil && c.eq(c.value, v) {
		c.mu.Unlock()
		return
	}
	c.value = v
	fns := c.snapshotSubs()
	c.mu.Unlock()

	// Invoke outside the lock so subscribers may read the cell.
	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn, invokes it immediately with the current value, and
// returns a func that removes the subscription.
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	v := c.value
	c.mu.Unlock()

	fn(v)

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// snapshotSubs returns the subscriber funcs in registration order.
// Caller must hold the lock.
func (c *Cell[T]) snapshotSubs() []func(T) {
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	return fns
}
