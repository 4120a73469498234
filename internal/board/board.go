// Package board is the task board: the durable store plus the transient
// form and filter state that drive it.
package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
)

// EditingSession is the add/edit form. EditID is set while an existing task
// is being edited.
type EditingSession struct {
	Title    string
	Category string
	EditID   *int64
}

func (s EditingSession) Editing() bool { return s.EditID != nil }

func newSession() EditingSession {
	return EditingSession{Category: model.DefaultCategory().Name}
}

type SubmitResult int

const (
	SubmitIgnored SubmitResult = iota
	SubmitAdded
	SubmitSaved
	// SubmitMissing means the task under edit disappeared before save. The
	// session is still cleared.
	SubmitMissing
)

func (r SubmitResult) String() string {
	switch r {
	case SubmitAdded:
		return "added"
	case SubmitSaved:
		return "saved"
	case SubmitMissing:
		return "missing"
	default:
		return "ignored"
	}
}

type Board struct {
	store   *store.Store
	Session EditingSession
	Filter  string
}

func New(st *store.Store) *Board {
	return &Board{
		store:   st,
		Session: newSession(),
		Filter:  model.FilterAll,
	}
}

func (b *Board) SetTitle(title string) {
	b.Session.Title = title
}

func (b *Board) SetCategory(name string) error {
	if err := model.ValidateCategory(name); err != nil {
		return err
	}
	b.Session.Category = name
	return nil
}

func (b *Board) CycleCategory() {
	b.Session.Category = model.NextCategory(b.Session.Category)
}

func (b *Board) SetFilter(selector string) error {
	if !model.IsValidFilter(selector) {
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, selector)
	}
	b.Filter = selector
	return nil
}

func (b *Board) CycleFilter() {
	b.Filter = model.NextFilter(b.Filter)
}

// Submit adds a task from the form, or saves the task under edit. A blank
// title is ignored and the form is left as it was.
func (b *Board) Submit(ctx context.Context) (SubmitResult, error) {
	if strings.TrimSpace(b.Session.Title) == "" {
		return SubmitIgnored, nil
	}
	if b.Session.Editing() {
		return b.save(ctx)
	}
	_, added, err := b.store.Add(ctx, b.Session.Title, b.Session.Category)
	if !added {
		return SubmitIgnored, err
	}
	b.Session = newSession()
	return SubmitAdded, err
}

// Add creates a task directly, leaving the form untouched. Used by the
// command palette and the CLI.
func (b *Board) Add(ctx context.Context, title, category string) (model.Task, bool, error) {
	if err := model.ValidateCategory(category); err != nil {
		return model.Task{}, false, err
	}
	return b.store.Add(ctx, title, category)
}

func (b *Board) save(ctx context.Context) (SubmitResult, error) {
	id := *b.Session.EditID
	res, err := b.store.Update(ctx, id, b.Session.Title, b.Session.Category)
	b.Session = newSession()
	if res == store.NotFound {
		return SubmitMissing, err
	}
	return SubmitSaved, err
}

// BeginEdit loads the task into the form. A miss leaves the form untouched.
func (b *Board) BeginEdit(id int64) store.Lookup {
	task, res := b.store.Get(id)
	if res == store.NotFound {
		return res
	}
	b.Session = EditingSession{
		Title:    task.Title,
		Category: task.Category,
		EditID:   &id,
	}
	return res
}

func (b *Board) CancelEdit() {
	b.Session = newSession()
}

func (b *Board) Toggle(ctx context.Context, id int64) (store.Lookup, error) {
	return b.store.ToggleComplete(ctx, id)
}

// Delete removes the task; deleting the task under edit also ends the edit.
func (b *Board) Delete(ctx context.Context, id int64) (store.Lookup, error) {
	res, err := b.store.Delete(ctx, id)
	if res == store.Found && b.Session.Editing() && *b.Session.EditID == id {
		b.Session = newSession()
	}
	return res, err
}

// Visible is the filtered view of the store for rendering.
func (b *Board) Visible() []model.Task {
	return b.store.Filter(b.Filter)
}

func (b *Board) Get(id int64) (model.Task, store.Lookup) {
	return b.store.Get(id)
}

func (b *Board) Len() int {
	return b.store.Len()
}
