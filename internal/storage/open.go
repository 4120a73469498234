package storage

import (
	"fmt"
	"strings"
)

// Open returns the backend named by b rooted at path. The memory backend
// ignores path.
func Open(b Backend, path string) (KV, error) {
	switch b {
	case BackendSQLite:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("storage: %s backend requires a path", b)
		}
		return OpenSQLite(path)
	case BackendFile:
		return OpenFile(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("storage: unsupported backend %q", b)
	}
}
