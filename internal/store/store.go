// Package store is the single source of truth for the document being
// edited. All rendering reads go through the exported cells; writes come
// from the editing layer, which persists them through the session client in
// parallel.
package store

import (
	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/cutlistlab/cabplan/internal/reactive"
)

// Store owns the project cell and its derived views.
//
// Dirty tracking: every local edit bumps a revision counter, and every
// confirmed persist acknowledges the revision that was current when the
// request was issued. The dirty cell derives from the two counters, so a
// failed persist leaves the store dirty and an edit racing a slow ack stays
// dirty until its own ack lands.
type Store struct {
	Project *reactive.Cell[*model.Project]

	CabinetCount        *reactive.Derived[int]
	PartCount           *reactive.Derived[int]
	Dirty               *reactive.Derived[bool]
	HasValidationErrors *reactive.Derived[bool]

	localRev *reactive.Cell[uint64]
	ackedRev *reactive.Cell[uint64]
}

// New creates an empty store with no project loaded.
func New() *Store {
	s := &Store{
		Project:  reactive.New[*model.Project](nil),
		localRev: reactive.New(uint64(0)),
		ackedRev: reactive.New(uint64(0)),
	}

	s.CabinetCount = reactive.Map(s.Project, func(p *model.Project) int {
		return p.CabinetCount()
	})
	s.PartCount = reactive.Map(s.Project, func(p *model.Project) int {
		if p == nil {
			return 0
		}
		return p.PartCount()
	})
	s.HasValidationErrors = reactive.Map(s.Project, func(p *model.Project) bool {
		return p != nil && p.Validation.HasErrors()
	})
	s.Dirty = reactive.Map2(s.localRev, s.ackedRev, func(local, acked uint64) bool {
		return local != acked
	})

	return s
}

// Current returns the loaded project, or nil.
func (s *Store) Current() *model.Project {
	return s.Project.Get()
}

// Load installs a project without marking the store dirty, for opening a
// document that matches the persisted state.
func (s *Store) Load(p *model.Project) {
	s.Project.Set(p)
	s.ackedRev.Set(s.localRev.Get())
}

// Replace installs a new document revision as a local edit.
func (s *Store) Replace(p *model.Project) {
	s.localRev.Set(s.localRev.Get() + 1)
	s.Project.Set(p)
}

// Revision returns the current local revision, for acknowledging after a
// successful persist.
func (s *Store) Revision() uint64 {
	return s.localRev.Get()
}

// Ack records that the server has confirmed state up to rev. Acks never
// move backwards.
func (s *Store) Ack(rev uint64) {
	if rev > s.ackedRev.Get() {
		s.ackedRev.Set(rev)
	}
}
