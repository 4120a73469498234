package update

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/taskboard/internal/storage"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.Backend != storage.BackendSQLite || cfg.StorageKey != "tasks" {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.TimeLayout != "2006-01-02 15:04:05" || cfg.DesktopNotifications {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TASKBOARD_BACKEND", "File")
	t.Setenv("TASKBOARD_PATH", "state/tasks.json")
	t.Setenv("TASKBOARD_STORAGE_KEY", "board")
	t.Setenv("TASKBOARD_TIME_LAYOUT", "2006-01-02")
	t.Setenv("TASKBOARD_LOG_FILE", "debug.log")
	t.Setenv("TASKBOARD_DESKTOP_NOTIFICATIONS", "yes")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.Backend != storage.BackendFile || cfg.Path != "state/tasks.json" {
		t.Fatalf("unexpected storage config: %+v", cfg)
	}
	if cfg.StorageKey != "board" || cfg.TimeLayout != "2006-01-02" || cfg.LogFile != "debug.log" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
}

func TestRuntimeConfigFromEnvIgnoresBadBool(t *testing.T) {
	t.Setenv("TASKBOARD_DESKTOP_NOTIFICATIONS", "maybe")
	base := DefaultRuntimeConfig()
	base.DesktopNotifications = true
	if cfg := RuntimeConfigFromEnv(base); !cfg.DesktopNotifications {
		t.Fatal("expected unparseable bool to keep base value")
	}
}

func TestLoadConfigFileOverlaysBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	body := "backend: memory\nstorage_key: school-board\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfigFile(DefaultRuntimeConfig(), path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Backend != storage.BackendMemory || cfg.StorageKey != "school-board" {
		t.Fatalf("unexpected file overrides: %+v", cfg)
	}
	if cfg.TimeLayout != "2006-01-02 15:04:05" {
		t.Fatalf("expected untouched key to keep default: %+v", cfg)
	}
}

func TestLoadConfigFileMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfigFile(DefaultRuntimeConfig(), filepath.Join(dir, "nope.yaml"))
	if err != nil || cfg != DefaultRuntimeConfig() {
		t.Fatalf("expected defaults for missing file, got %+v, %v", cfg, err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("backend: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfigFile(DefaultRuntimeConfig(), bad); err == nil {
		t.Fatal("expected parse error for malformed yaml")
	}
}

func TestValidateFillsDefaultPath(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Backend = storage.BackendFile
	got, err := cfg.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Path != ".taskboard.json" {
		t.Fatalf("expected json default path, got %q", got.Path)
	}

	cfg.Backend = "redis"
	if _, err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
