// Package grid implements the admin table's edit/confirm/save/delete state
// machine. The workflow owns the row list and the per-row edit state
// exclusively; every mutation goes through its methods, which is what keeps
// the snapshot/restore invariants intact. A snapshot exists if and only if a
// row is in edit mode, so "editing without an original" is unrepresentable.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/caseworks/user-portal/internal/domain/model"
)

var (
	// ErrRowNotFound is returned when an operation targets an id with no
	// matching row. Callers treat it as a no-op, never a crash.
	ErrRowNotFound = errors.New("grid: row not found")
	// ErrNotEditing is returned when an edit-mode operation targets a row in view mode.
	ErrNotEditing = errors.New("grid: row is not in edit mode")
	// ErrAlreadyEditing is returned when EnterEdit targets a row already being edited.
	ErrAlreadyEditing = errors.New("grid: row is already in edit mode")
	// ErrConfirmationPending is returned when a confirmation is requested for
	// one row while another row's confirmation is still open. The single
	// dialog is global; requests are rejected rather than silently merged.
	ErrConfirmationPending = errors.New("grid: another confirmation is pending")
)

// ConfirmKind identifies the mutation a pending confirmation would commit.
type ConfirmKind string

const (
	ConfirmSave   ConfirmKind = "save"
	ConfirmDelete ConfirmKind = "delete"
)

// Confirmation is the single pending save/delete awaiting explicit user
// confirmation. At most one exists per workflow at any time.
type Confirmation struct {
	Kind  ConfirmKind
	RowID string
	Text  string
}

// Edits carries the editable grid fields for a row's working copy.
type Edits struct {
	FirstName string
	LastName  string
	Email     string
	MobileNo  string
	Role      string
}

// Row is a read-only view of a row's record and mode.
type Row struct {
	User    model.User
	Editing bool
}

// row pairs the working copy with its pre-edit snapshot.
// Invariant: original != nil exactly while the row is in edit mode.
type row struct {
	user     model.User
	original *model.User
}

// Workflow holds one admin session's table state. Safe for concurrent use.
type Workflow struct {
	mu      sync.Mutex
	rows    []*row
	byID    map[string]*row
	pending *Confirmation
}

// New builds a workflow over the records fetched from the user service.
// Records without an id get one synthesized from their list index; the id
// stays stable for the lifetime of the workflow so edit/save/cancel always
// target the same row.
func New(users []model.User) *Workflow {
	w := &Workflow{
		rows: make([]*row, 0, len(users)),
		byID: make(map[string]*row, len(users)),
	}
	for i, u := range users {
		if u.ID == "" {
			u.ID = strconv.Itoa(i)
		}
		r := &row{user: u}
		w.rows = append(w.rows, r)
		w.byID[u.ID] = r
	}
	return w
}

// Rows returns the rows in display order with their current mode.
func (w *Workflow) Rows() []Row {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Row, 0, len(w.rows))
	for _, r := range w.rows {
		out = append(out, Row{User: r.user, Editing: r.original != nil})
	}
	return out
}

// Row returns a single row by id.
func (w *Workflow) Row(id string) (Row, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.byID[id]
	if !ok {
		return Row{}, false
	}
	return Row{User: r.user, Editing: r.original != nil}, true
}

// EnterEdit snapshots the row's current record and switches it to edit mode.
// No network call happens here.
func (w *Workflow) EnterEdit(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.byID[id]
	if !ok {
		return ErrRowNotFound
	}
	if r.original != nil {
		return ErrAlreadyEditing
	}
	snapshot := r.user
	r.original = &snapshot
	return nil
}

// ApplyEdits updates the working copy of a row in edit mode. The snapshot is
// untouched, so a later cancel still restores the exact pre-edit record.
func (w *Workflow) ApplyEdits(id string, e Edits) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.byID[id]
	if !ok {
		return ErrRowNotFound
	}
	if r.original == nil {
		return ErrNotEditing
	}
	r.user.FirstName = e.FirstName
	r.user.LastName = e.LastName
	r.user.Email = e.Email
	r.user.MobileNo = e.MobileNo
	r.user.Role = e.Role
	return nil
}

// CancelEdit restores the snapshot and returns the row to view mode.
// Any pending confirmation for this row is dropped along with the edits.
func (w *Workflow) CancelEdit(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.byID[id]
	if !ok {
		return ErrRowNotFound
	}
	if r.original == nil {
		return ErrNotEditing
	}
	r.user = *r.original
	r.original = nil
	w.clearPendingFor(id)
	return nil
}

// RequestSave opens a save confirmation for a row in edit mode. Nothing is
// sent upstream until the confirmation is taken and committed. A re-request
// for the same row replaces the open confirmation; a request while a
// different row's confirmation is open is rejected.
func (w *Workflow) RequestSave(id string) (Confirmation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.byID[id]
	if !ok {
		return Confirmation{}, ErrRowNotFound
	}
	if r.original == nil {
		return Confirmation{}, ErrNotEditing
	}
	if w.pending != nil && w.pending.RowID != id {
		return Confirmation{}, ErrConfirmationPending
	}
	c := Confirmation{
		Kind:  ConfirmSave,
		RowID: id,
		Text:  fmt.Sprintf("Save changes to %s?", r.user.Email),
	}
	w.pending = &c
	return c, nil
}

// RequestDelete opens a delete confirmation for a row in view mode. The row
// list is not touched until the delete is confirmed and acknowledged.
func (w *Workflow) RequestDelete(id string) (Confirmation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.byID[id]
	if !ok {
		return Confirmation{}, ErrRowNotFound
	}
	if r.original != nil {
		return Confirmation{}, ErrAlreadyEditing
	}
	if w.pending != nil && w.pending.RowID != id {
		return Confirmation{}, ErrConfirmationPending
	}
	c := Confirmation{
		Kind:  ConfirmDelete,
		RowID: id,
		Text:  fmt.Sprintf("Delete %s?", r.user.Email),
	}
	w.pending = &c
	return c, nil
}

// Pending returns the open confirmation, if any.
func (w *Workflow) Pending() (Confirmation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return Confirmation{}, false
	}
	return *w.pending, true
}

// TakePending clears and returns the open confirmation. Confirming always
// consumes the request, whatever the outcome of the upstream call.
func (w *Workflow) TakePending() (Confirmation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return Confirmation{}, false
	}
	c := *w.pending
	w.pending = nil
	return c, true
}

// Dismiss drops the open confirmation without committing anything.
func (w *Workflow) Dismiss() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = nil
}

// Record returns the row's current (possibly edited) record.
func (w *Workflow) Record(id string) (model.User, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.byID[id]
	if !ok {
		return model.User{}, false
	}
	return r.user, true
}

// FinishSave commits an acknowledged save: the snapshot is discarded and the
// row returns to view mode keeping its edited values. Callers invoke this
// only after the update endpoint reported success; on failure the row simply
// stays in edit mode with snapshot and edits intact.
func (w *Workflow) FinishSave(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.byID[id]
	if !ok {
		return ErrRowNotFound
	}
	if r.original == nil {
		return ErrNotEditing
	}
	r.original = nil
	return nil
}

// Remove drops a row after an acknowledged delete. On upstream failure
// callers never invoke this, so the list stays untouched.
func (w *Workflow) Remove(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.byID[id]; !ok {
		return ErrRowNotFound
	}
	delete(w.byID, id)
	for i, r := range w.rows {
		if r.user.ID == id {
			w.rows = append(w.rows[:i], w.rows[i+1:]...)
			break
		}
	}
	w.clearPendingFor(id)
	return nil
}

// clearPendingFor drops the open confirmation when it targets id.
// Callers must hold w.mu.
func (w *Workflow) clearPendingFor(id string) {
	if w.pending != nil && w.pending.RowID == id {
		w.pending = nil
	}
}
