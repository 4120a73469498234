package update

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
)

var ErrInvalidConfig = errors.New("update: invalid config")

type RuntimeConfig struct {
	Backend              storage.Backend `yaml:"backend"`
	Path                 string          `yaml:"path"`
	StorageKey           string          `yaml:"storage_key"`
	TimeLayout           string          `yaml:"time_layout"`
	LogFile              string          `yaml:"log_file"`
	DesktopNotifications bool            `yaml:"desktop_notifications"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:              storage.BackendSQLite,
		StorageKey:           store.DefaultKey,
		TimeLayout:           store.DefaultTimeLayout,
		DesktopNotifications: false,
	}
}

// LoadConfigFile overlays the YAML file at path onto base. Keys absent from
// the file keep their base values; a missing file is not an error.
func LoadConfigFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKBOARD_BACKEND"); ok {
		cfg.Backend = storage.Backend(strings.ToLower(v))
	}
	if v, ok := getEnvString("TASKBOARD_PATH"); ok {
		cfg.Path = v
	}
	if v, ok := getEnvString("TASKBOARD_STORAGE_KEY"); ok {
		cfg.StorageKey = v
	}
	if v, ok := getEnvString("TASKBOARD_TIME_LAYOUT"); ok {
		cfg.TimeLayout = v
	}
	if v, ok := getEnvString("TASKBOARD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("TASKBOARD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

// Validate checks the backend and fills in the default data path for it.
func (c RuntimeConfig) Validate() (RuntimeConfig, error) {
	if !c.Backend.IsValid() {
		return c, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return c, fmt.Errorf("%w: storage key is empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Path) == "" {
		c.Path = DefaultPath(c.Backend)
	}
	return c, nil
}

func DefaultPath(b storage.Backend) string {
	switch b {
	case storage.BackendSQLite:
		return ".taskboard.db"
	case storage.BackendFile:
		return ".taskboard.json"
	default:
		return ""
	}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
