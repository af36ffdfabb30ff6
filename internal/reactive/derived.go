package reactive

// Source is anything observable: a Cell or another Derived.
type Source[T any] interface {
	Get() T
	Subscribe(fn func(T)) func()
}

// Derived is a read-only view recomputed from one or more source cells.
// The combining function must be pure; it runs synchronously whenever a
// source notifies.
type Derived[T any] struct {
	cell *Cell[T]
}

// Get returns the current derived value.
func (d *Derived[T]) Get() T {
	return d.cell.Get()
}

// Subscribe registers fn, invokes it immediately with the current value, and
// returns an unsubscribe func.
func (d *Derived[T]) Subscribe(fn func(T)) func() {
	return d.cell.Subscribe(fn)
}

// Map derives a value from a single source.
func Map[A any, T comparable](src Source[A], f func(A) T) *Derived[T] {
	out := New(f(src.Get()))
	src.Subscribe(func(a A) {
		out.Set(f(a))
	})
	return &Derived[T]{cell: out}
}

// Map2 derives a value from two sources.
func Map2[A, B any, T comparable](a Source[A], b Source[B], f func(A, B) T) *Derived[T] {
	out := New(f(a.Get(), b.Get()))
	recompute := func() {
		out.Set(f(a.Get(), b.Get()))
	}
	a.Subscribe(func(A) { recompute() })
	b.Subscribe(func(B) { recompute() })
	return &Derived[T]{cell: out}
}

// Map3 derives a value from three sources.
func Map3[A, B, C any, T comparable](a Source[A], b Source[B], c Source[C], f func(A, B, C) T) *Derived[T] {
	out := New(f(a.Get(), b.Get(), c.Get()))
	recompute := func() {
		out.Set(f(a.Get(), b.Get(), c.Get()))
	}
	a.Subscribe(func(A) { recompute() })
	b.Subscribe(func(B) { recompute() })
	c.Subscribe(func(C) { recompute() })
	return &Derived[T]{cell: out}
}
