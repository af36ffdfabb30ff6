// Package history keeps bounded undo/redo stacks of full-document
// snapshots. It is decoupled from the network layer: restoring a snapshot
// only touches the store, and re-persisting is the editing layer's job.
package history

import (
	"encoding/json"

	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/cutlistlab/cabplan/internal/reactive"
	"github.com/cutlistlab/cabplan/internal/store"
)

// DefaultLimit bounds the undo stack. The redo stack needs no independent
// bound: it is only ever filled by undos, which are limited by the undo
// stack, and cleared by the next checkpoint.
const DefaultLimit = 50

// Snapshot is an immutable serialized copy of the whole project.
type Snapshot []byte

// Engine maintains the two history stacks over a store.
type Engine struct {
	store *store.Store
	limit int

	undo []Snapshot
	redo []Snapshot

	undoLen *reactive.Cell[int]
	redoLen *reactive.Cell[int]

	CanUndo *reactive.Derived[bool]
	CanRedo *reactive.Derived[bool]
}

// New creates an engine over the store. A non-positive limit means
// DefaultLimit.
func New(st *store.Store, limit int) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	e := &Engine{
		store:   st,
		limit:   limit,
		undoLen: reactive.New(0),
		redoLen: reactive.New(0),
	}
	e.CanUndo = reactive.Map(e.undoLen, func(n int) bool { return n > 0 })
	e.CanRedo = reactive.Map(e.redoLen, func(n int) bool { return n > 0 })
	return e
}

// Checkpoint records the current project as a pre-edit snapshot. Call it
// before applying a mutating operation. With no project loaded it is a
// no-op. Any redo history becomes invalid and is cleared.
func (e *Engine) Checkpoint() {
	snap, ok := e.snapshot()
	if !ok {
		return
	}
	e.undo = append(e.undo, snap)
	if len(e.undo) > e.limit {
		e.undo = e.undo[1:]
	}
	e.redo = nil
	e.publish()
}

// Undo restores the most recent snapshot, moving the current state onto the
// redo stack. Returns false (no-op) when the undo stack is empty.
func (e *Engine) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	snap := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]

	if current, ok := e.snapshot(); ok {
		e.redo = append(e.redo, current)
	}
	e.restore(snap)
	e.publish()
	return true
}

// Redo is symmetric to Undo.
func (e *Engine) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	snap := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]

	if current, ok := e.snapshot(); ok {
		e.undo = append(e.undo, current)
	}
	e.restore(snap)
	e.publish()
	return true
}

// Rollback discards the most recent checkpoint and restores it, without
// touching the redo stack. The editing layer uses it to revert a failed
// optimistic edit.
func (e *Engine) Rollback() bool {
	if len(e.undo) == 0 {
		return false
	}
	snap := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.restore(snap)
	e.publish()
	return true
}

// Depths returns the stack sizes, newest entries last.
func (e *Engine) Depths() (undo, redo int) {
	return len(e.undo), len(e.redo)
}

// State exposes the raw stacks for persistence between CLI invocations.
func (e *Engine) State() (undo, redo []Snapshot) {
	return e.undo, e.redo
}

// SetState replaces both stacks, trimming the undo stack to the limit
// (oldest first).
func (e *Engine) SetState(undo, redo []Snapshot) {
	if len(undo) > e.limit {
		undo = undo[len(undo)-e.limit:]
	}
	e.undo = undo
	e.redo = redo
	e.publish()
}

func (e *Engine) snapshot() (Snapshot, bool) {
	p := e.store.Current()
	if p == nil {
		return nil, false
	}
	raw, err := json.Marshal(p)
	if err != nil {
		// The document is plain data; this cannot fail in practice.
		return nil, false
	}
	return raw, true
}

func (e *Engine) restore(snap Snapshot) {
	var p model.Project
	if err := json.Unmarshal(snap, &p); err != nil {
		return
	}
	// Restoring counts as a local edit for dirty tracking.
	e.store.Replace(&p)
}

func (e *Engine) publish() {
	e.undoLen.Set(len(e.undo))
	e.redoLen.Set(len(e.redo))
}
