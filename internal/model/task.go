package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTitleRequired      = errors.New("model: task title is required")
	ErrCompletedAtMissing = errors.New("model: completedAt is required when task is completed")
	ErrCompletedAtOrphan  = errors.New("model: completedAt must be absent when task is not completed")
)

// Task is a single board entry. Its JSON form is the persisted layout, so
// field names and omitempty on CompletedAt are part of the storage contract.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	CreatedAt   string  `json:"createdAt"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completedAt,omitempty"`
}

func (t Task) Validate() error {
	if t.ID == 0 {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(t.CreatedAt) == "" {
		return errors.New("model: task createdAt is required")
	}
	if t.Completed && t.CompletedAt == nil {
		return fmt.Errorf("%w: id %d", ErrCompletedAtMissing, t.ID)
	}
	if !t.Completed && t.CompletedAt != nil {
		return fmt.Errorf("%w: id %d", ErrCompletedAtOrphan, t.ID)
	}
	return nil
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	out := t
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		out.CompletedAt = &v
	}
	return out
}

func (t Task) CompletedAtText() string {
	if t.CompletedAt == nil {
		return ""
	}
	return *t.CompletedAt
}
