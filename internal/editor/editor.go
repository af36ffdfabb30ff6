// Package editor is the editing layer: it checkpoints history before every
// mutating operation, applies the edit to the local store optimistically,
// and persists it through the session client. Failures surface as toasts.
package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cutlistlab/cabplan/internal/history"
	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/cutlistlab/cabplan/internal/session"
	"github.com/cutlistlab/cabplan/internal/store"
	"github.com/cutlistlab/cabplan/internal/toast"
)

// Config holds the editor's explicit policies.
type Config struct {
	// RollbackOnFailure reverts the local store to the pre-edit snapshot
	// when a persist fails. Off by default: the optimistic value is kept
	// and the store stays dirty.
	RollbackOnFailure bool

	Logger *slog.Logger
}

// Editor coordinates the store, history engine, session client and toast
// queue. A nil client runs the editor offline: edits apply locally and no
// persist is attempted.
type Editor struct {
	store    *store.Store
	history  *history.Engine
	client   *session.Client
	toasts   *toast.Queue
	log      *slog.Logger
	rollback bool
}

// New wires an editor over its collaborators.
func New(st *store.Store, hist *history.Engine, client *session.Client, toasts *toast.Queue, cfg Config) *Editor {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Editor{
		store:    st,
		history:  hist,
		client:   client,
		toasts:   toasts,
		log:      log,
		rollback: cfg.RollbackOnFailure,
	}
}

// AddCabinet appends a cabinet to the sequence.
func (ed *Editor) AddCabinet(ctx context.Context, cab model.Cabinet) error {
	ed.history.Checkpoint()
	next := ed.working()
	next.Cabinets = append(next.Cabinets, cab)
	ed.apply(next)
	return ed.persistProject(ctx)
}

// UpdateCabinet replaces the cabinet at index.
func (ed *Editor) UpdateCabinet(ctx context.Context, index int, cab model.Cabinet) error {
	p := ed.store.Current()
	if p == nil || index < 0 || index >= len(p.Cabinets) {
		return fmt.Errorf("no cabinet at index %d", index)
	}
	ed.history.Checkpoint()
	next := p.Clone()
	next.Cabinets[index] = cab
	ed.apply(next)

	if ed.client == nil {
		return nil
	}
	rev := ed.store.Revision()
	if err := ed.client.UpdateCabinet(ctx, index, cab); err != nil {
		return ed.fail(err, true)
	}
	ed.store.Ack(rev)
	return nil
}

// RemoveCabinet deletes the cabinet at index.
func (ed *Editor) RemoveCabinet(ctx context.Context, index int) error {
	p := ed.store.Current()
	if p == nil || index < 0 || index >= len(p.Cabinets) {
		return fmt.Errorf("no cabinet at index %d", index)
	}
	ed.history.Checkpoint()
	next := p.Clone()
	next.Cabinets = append(next.Cabinets[:index], next.Cabinets[index+1:]...)
	ed.apply(next)
	return ed.persistProject(ctx)
}

// SetDraft installs or replaces the in-progress cabinet.
func (ed *Editor) SetDraft(ctx context.Context, cab model.Cabinet) error {
	ed.history.Checkpoint()
	next := ed.working()
	next.Draft = &cab
	ed.apply(next)
	return ed.persistProject(ctx)
}

// CommitDraft moves the in-progress cabinet into the sequence.
func (ed *Editor) CommitDraft(ctx context.Context) error {
	p := ed.store.Current()
	if p == nil || p.Draft == nil {
		return fmt.Errorf("no draft cabinet to commit")
	}
	ed.history.Checkpoint()
	next := p.Clone()
	next.Cabinets = append(next.Cabinets, *next.Draft)
	next.Draft = nil
	ed.apply(next)
	return ed.persistProject(ctx)
}

// DiscardDraft drops the in-progress cabinet.
func (ed *Editor) DiscardDraft(ctx context.Context) error {
	p := ed.store.Current()
	if p == nil || p.Draft == nil {
		return nil
	}
	ed.history.Checkpoint()
	next := p.Clone()
	next.Draft = nil
	ed.apply(next)
	return ed.persistProject(ctx)
}

// Undo restores the previous snapshot and re-persists the document.
// Returns false when there is nothing to undo.
func (ed *Editor) Undo(ctx context.Context) (bool, error) {
	if !ed.history.Undo() {
		return false, nil
	}
	return true, ed.persist(ctx, false)
}

// Redo is symmetric to Undo.
func (ed *Editor) Redo(ctx context.Context) (bool, error) {
	if !ed.history.Redo() {
		return false, nil
	}
	return true, ed.persist(ctx, false)
}

// Nest runs the remote optimizer and caches the result on the document.
// Nesting is not undoable: no checkpoint is taken.
func (ed *Editor) Nest(ctx context.Context) (*model.NestingResult, error) {
	if ed.client == nil {
		return nil, fmt.Errorf("nesting requires a planning service")
	}
	p := ed.store.Current()
	if p == nil {
		return nil, fmt.Errorf("no project loaded")
	}
	if p.Validation.HasErrors() {
		return nil, fmt.Errorf("project has validation errors; fix them before nesting")
	}

	// The server nests its own copy of the document, so push local state
	// first.
	if err := ed.persist(ctx, false); err != nil {
		return nil, err
	}

	result, err := ed.client.Nest(ctx)
	if err != nil {
		return nil, ed.fail(err, false)
	}

	next := ed.store.Current().Clone()
	next.Nesting = result
	ed.apply(next)
	if err := ed.persist(ctx, false); err != nil {
		return result, err
	}
	return result, nil
}

// working returns a mutable copy of the document, starting a fresh project
// when none is loaded.
func (ed *Editor) working() *model.Project {
	p := ed.store.Current()
	if p == nil {
		return model.NewProject("")
	}
	return p.Clone()
}

// apply installs a new revision locally, revalidating first.
func (ed *Editor) apply(next *model.Project) {
	next.Validation = next.Validate()
	ed.store.Replace(next)
}

func (ed *Editor) persistProject(ctx context.Context) error {
	return ed.persist(ctx, true)
}

// persist pushes the whole document. checkpointed marks persists that
// follow a fresh checkpoint, which are the only ones the rollback policy
// may revert.
func (ed *Editor) persist(ctx context.Context, checkpointed bool) error {
	if ed.client == nil {
		return nil
	}
	rev := ed.store.Revision()
	if err := ed.client.UpdateProject(ctx, ed.store.Current()); err != nil {
		return ed.fail(err, checkpointed)
	}
	ed.store.Ack(rev)
	return nil
}

// fail routes the error to the toast queue and applies the rollback policy.
func (ed *Editor) fail(err error, checkpointed bool) error {
	ed.log.Warn("edit failed to persist", "err", err)
	if ed.toasts != nil {
		ed.toasts.Show(err.Error(), toast.Error)
	}
	if ed.rollback && checkpointed {
		ed.history.Rollback()
	}
	return err
}
