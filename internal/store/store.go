// Package store owns the ordered task list and mirrors it to a key-value
// backend after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

const (
	DefaultKey        = "tasks"
	DefaultTimeLayout = "2006-01-02 15:04:05"
)

// Lookup reports whether an id-addressed operation found its target. A miss
// is never an error.
type Lookup int

const (
	NotFound Lookup = iota
	Found
)

func (l Lookup) String() string {
	if l == Found {
		return "found"
	}
	return "not_found"
}

type Options struct {
	Key        string
	TimeLayout string
	Now        func() time.Time
	Logger     *slog.Logger
}

type Store struct {
	kv     storage.KV
	key    string
	layout string
	now    func() time.Time
	ids    idSource
	logger *slog.Logger
	tasks  []model.Task
}

func New(kv storage.KV, opts Options) (*Store, error) {
	if kv == nil {
		return nil, errors.New("store: nil kv")
	}
	s := &Store{
		kv:     kv,
		key:    strings.TrimSpace(opts.Key),
		layout: strings.TrimSpace(opts.TimeLayout),
		now:    opts.Now,
		logger: opts.Logger,
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.layout == "" {
		s.layout = DefaultTimeLayout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s, nil
}

// Load replaces the in-memory list with the persisted one. Absent or
// malformed data loads as an empty list; only a backend read failure is
// returned.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("store: load %q: %w", s.key, err)
	}
	s.tasks = s.decodeTasks(raw, ok)
	for _, t := range s.tasks {
		s.ids.observe(t.ID)
	}
	s.logger.Debug("tasks loaded", "key", s.key, "count", len(s.tasks))
	return nil
}

// Add appends a task unless title is blank. added is false for a blank title.
func (s *Store) Add(ctx context.Context, title, category string) (task model.Task, added bool, err error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return model.Task{}, false, nil
	}
	now := s.now()
	task = model.Task{
		ID:        s.ids.next(now),
		Title:     trimmed,
		Category:  category,
		CreatedAt: now.Format(s.layout),
	}
	s.tasks = append(s.tasks, task)
	s.logger.Debug("task added", "id", task.ID, "category", category)
	return task.Clone(), true, s.persist(ctx)
}

func (s *Store) Get(id int64) (model.Task, Lookup) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, NotFound
	}
	return s.tasks[i].Clone(), Found
}

// Update replaces title and category of the task with id. Identity,
// creation time and completion state are preserved. A blank title leaves the
// task untouched and returns model.ErrTitleRequired.
func (s *Store) Update(ctx context.Context, id int64, title, category string) (Lookup, error) {
	i := s.indexOf(id)
	if i < 0 {
		return NotFound, nil
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return Found, model.ErrTitleRequired
	}
	s.tasks[i].Title = trimmed
	s.tasks[i].Category = category
	s.logger.Debug("task updated", "id", id)
	return Found, s.persist(ctx)
}

func (s *Store) ToggleComplete(ctx context.Context, id int64) (Lookup, error) {
	i := s.indexOf(id)
	if i < 0 {
		return NotFound, nil
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		at := s.now().Format(s.layout)
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	s.logger.Debug("task toggled", "id", id, "completed", t.Completed)
	return Found, s.persist(ctx)
}

func (s *Store) Delete(ctx context.Context, id int64) (Lookup, error) {
	i := s.indexOf(id)
	if i < 0 {
		return NotFound, nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.logger.Debug("task deleted", "id", id)
	return Found, s.persist(ctx)
}

// Filter returns the tasks in selector's category, or all of them for
// model.FilterAll, in insertion order.
func (s *Store) Filter(selector string) []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if selector == model.FilterAll || t.Category == selector {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (s *Store) Tasks() []model.Task {
	return s.Filter(model.FilterAll)
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	payload, err := encodeTasks(s.tasks)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		s.logger.Error("persist failed", "key", s.key, "err", err)
		return fmt.Errorf("store: persist %q: %w", s.key, err)
	}
	return nil
}

func encodeTasks(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeTasks is lenient: unreadable payloads load as empty, and elements
// are repaired or dropped so every loaded task validates and ids are unique.
func (s *Store) decodeTasks(raw string, ok bool) []model.Task {
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Task{}
	}
	var decoded []*model.Task
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.logger.Warn("discarding unparseable task list", "err", err)
		return []model.Task{}
	}
	tasks := make([]model.Task, 0, len(decoded))
	seen := make(map[int64]bool, len(decoded))
	for i, t := range decoded {
		if t == nil {
			s.logger.Warn("dropping null task", "index", i)
			continue
		}
		task := *t
		if !task.Completed {
			task.CompletedAt = nil
		} else if task.CompletedAt == nil {
			stamp := s.now().Format(s.layout)
			task.CompletedAt = &stamp
			s.logger.Warn("completed task had no completedAt, stamped at load", "id", task.ID)
		}
		if err := task.Validate(); err != nil {
			s.logger.Warn("dropping invalid task", "index", i, "err", err)
			continue
		}
		if seen[task.ID] {
			s.logger.Warn("dropping task with duplicate id", "index", i, "id", task.ID)
			continue
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks
}
