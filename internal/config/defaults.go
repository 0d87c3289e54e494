package config

import (
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/tradeboard/internal/storage"
)

// SchemaVersion is written by Default.
const SchemaVersion = "1.0"

// Dir returns the directory holding the settings file, state and logs.
func Dir() string {
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, "tradeboard")
	}
	return filepath.Join(os.TempDir(), "tradeboard")
}

// DefaultPath is the settings file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the settings used when no file exists.
func Default() *Config {
	cfg := &Config{Version: SchemaVersion}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills unset values.
func applyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = storage.BackendFile
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath(cfg.Storage.Backend)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(Dir(), "tradeboard.log")
	}
	if cfg.Display.Theme == "" {
		cfg.Display.Theme = "system"
	}
}

// DefaultStoragePath returns where backend keeps its data by default.
func DefaultStoragePath(backend string) string {
	switch backend {
	case storage.BackendBadger:
		return filepath.Join(Dir(), "state.badger")
	case storage.BackendSQLite:
		return filepath.Join(Dir(), "state.db")
	case storage.BackendMemory:
		return ""
	default:
		return filepath.Join(Dir(), "state.json")
	}
}
