// Package toast queues transient user-facing notifications with automatic
// expiry.
package toast

import (
	"sync"
	"time"

	"github.com/cutlistlab/cabplan/internal/reactive"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 4 * time.Second

// Severity classifies a toast for presentation.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Toast is one live notification. IDs increase monotonically per queue.
type Toast struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Scheduler schedules the expiry callbacks. The seam exists so tests can
// drive virtual time instead of sleeping.
type Scheduler interface {
	// AfterFunc runs fn after d and returns a cancel func.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Queue holds the live toasts in insertion order. Each toast expires
// independently.
type Queue struct {
	mu      sync.Mutex
	ttl     time.Duration
	sched   Scheduler
	nextID  int64
	active  []Toast
	cancels map[int64]func()

	// Toasts notifies observers with the live list on every change.
	Toasts *reactive.Cell[[]Toast]
}

// Option configures a Queue.
type Option func(*Queue)

// WithTTL overrides the toast lifetime.
func WithTTL(d time.Duration) Option {
	return func(q *Queue) { q.ttl = d }
}

// WithScheduler overrides the expiry scheduler.
func WithScheduler(s Scheduler) Option {
	return func(q *Queue) { q.sched = s }
}

// NewQueue creates an empty queue with real timers and the default TTL.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		ttl:     DefaultTTL,
		sched:   timerScheduler{},
		cancels: make(map[int64]func()),
		Toasts:  reactive.NewFunc[[]Toast](nil, nil),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Show appends a toast and schedules its removal after the TTL.
func (q *Queue) Show(message string, severity Severity) Toast {
	if severity == "" {
		severity = Info
	}

	q.mu.Lock()
	q.nextID++
	t := Toast{
		ID:        q.nextID,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}
	q.active = append(q.active, t)
	q.cancels[t.ID] = q.sched.AfterFunc(q.ttl, func() {
		q.Dismiss(t.ID)
	})
	live := append([]Toast(nil), q.active...)
	q.mu.Unlock()

	q.Toasts.Set(live)
	return t
}

// Dismiss removes one toast by id. Other toasts are unaffected. Unknown ids
// are ignored.
func (q *Queue) Dismiss(id int64) {
	q.mu.Lock()
	idx := -1
	for i, t := range q.active {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	q.active = append(q.active[:idx], q.active[idx+1:]...)
	if cancel, ok := q.cancels[id]; ok {
		delete(q.cancels, id)
		cancel()
	}
	live := append([]Toast(nil), q.active...)
	q.mu.Unlock()

	q.Toasts.Set(live)
}

// Active returns the live toasts in insertion order.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Toast(nil), q.active...)
}
