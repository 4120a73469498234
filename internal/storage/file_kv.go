package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// FileKV keeps every key in one JSON object file. Reads and writes hold an
// advisory lock on a sibling .lock file so two processes never interleave a
// rewrite; the last writer still wins.
type FileKV struct {
	path   string
	flk    *flock.Flock
	mu     sync.Mutex
	closed bool
}

func OpenFile(path string) (*FileKV, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("storage: file path is required")
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return &FileKV{path: trimmed, flk: flock.New(trimmed + ".lock")}, nil
}

func (f *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	if _, err := f.flk.TryRLockContext(ctx, lockRetryDelay); err != nil {
		return "", false, fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer func() { _ = f.flk.Unlock() }()

	entries, err := f.readLocked()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

func (f *FileKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if _, err := f.flk.TryLockContext(ctx, lockRetryDelay); err != nil {
		return fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer func() { _ = f.flk.Unlock() }()

	entries, err := f.readLocked()
	if err != nil {
		return err
	}
	entries[key] = value
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f *FileKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.flk.Close()
}

// readLocked treats a missing, blank or unparseable file as holding no keys.
// The next Set replaces it.
func (f *FileKV) readLocked() (map[string]string, error) {
	out := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return make(map[string]string), nil
	}
	return out, nil
}
