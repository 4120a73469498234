package storage

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("storage: closed")

// KV is the durable key-value collaborator behind the task store. Get reports
// ok=false for an absent key rather than returning an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Timestamper is implemented by backends that record when a key was last
// written.
type Timestamper interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}

var _ Timestamper = (*SQLiteKV)(nil)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	default:
		return false
	}
}
