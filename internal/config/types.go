package config

import (
	"github.com/alexisbeaulieu97/tradeboard/internal/colormode"
)

// Config represents the tradeboard settings file.
type Config struct {
	Version string                   `yaml:"version" validate:"required,semver"`
	Storage StorageSettings          `yaml:"storage,omitempty"`
	Log     LogSettings              `yaml:"log,omitempty"`
	Display DisplaySettings          `yaml:"display,omitempty"`
	Tables  map[string]TableSettings `yaml:"tables,omitempty" validate:"omitempty,dive"`
}

// StorageSettings select where view state is persisted.
type StorageSettings struct {
	Backend string `yaml:"backend,omitempty" validate:"omitempty,storage_backend"`
	Path    string `yaml:"path,omitempty"`
	// QuotaBytes limits the memory backend; zero means unlimited.
	QuotaBytes int `yaml:"quota_bytes,omitempty" validate:"omitempty,min=0"`
}

// LogSettings configure the dashboard log file.
type LogSettings struct {
	Level      string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty" validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `yaml:"max_backups,omitempty" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty" validate:"omitempty,min=0,max=3650"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// DisplaySettings tune the dashboard.
type DisplaySettings struct {
	Theme      string `yaml:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
	Pagination bool   `yaml:"pagination,omitempty"`
	PageSize   int    `yaml:"page_size,omitempty" validate:"omitempty,min=1,max=1000"`
	// DataDir replaces the embedded fixtures with JSON files of the same names.
	DataDir string `yaml:"data_dir,omitempty"`
}

// TableSettings add color modes to a built-in table.
type TableSettings struct {
	ColorModes []colormode.Mode `yaml:"color_modes,omitempty" validate:"omitempty,dive"`
}

// ExtraColorModes returns the configured modes keyed by table id.
func (c *Config) ExtraColorModes() map[string][]colormode.Mode {
	if c == nil || len(c.Tables) == 0 {
		return nil
	}
	out := make(map[string][]colormode.Mode, len(c.Tables))
	for id, table := range c.Tables {
		if len(table.ColorModes) > 0 {
			out[id] = table.ColorModes
		}
	}
	return out
}
