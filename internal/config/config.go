// Package config provides configuration types, defaults, and persistence for
// moodlog.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"moodlog/internal/tracing"
)

// Config holds all configuration options for moodlog.
type Config struct {
	// DataDir is the directory holding the journal database and logs.
	// Default: ~/.moodlog
	DataDir string `mapstructure:"data_dir"`

	// UserID identifies the local profile. Generated on first run and
	// written back to the config file.
	UserID string `mapstructure:"user_id"`

	// Timezone overrides the local timezone for civil date computation,
	// e.g. "Asia/Seoul". Empty uses the system location.
	Timezone string `mapstructure:"timezone"`

	Report  ReportConfig    `mapstructure:"report"`
	UI      UIConfig        `mapstructure:"ui"`
	Tracing tracing.Config  `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// ReportConfig holds report behavior options. The statistical policy
// constants (gate thresholds, delta cutoffs) are fixed in code; only
// operational knobs live here.
type ReportConfig struct {
	// CacheTTLSeconds bounds how long a memoized report may be served.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`

	// WatchDebounceMS debounces database file change notifications.
	WatchDebounceMS int `mapstructure:"watch_debounce_ms"`
}

// UIConfig holds output rendering options.
type UIConfig struct {
	// Color toggles styled terminal output.
	Color bool `mapstructure:"color"`

	// Width is the wrap width for coach messages. 0 uses the default.
	Width int `mapstructure:"width"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:  defaultDataDir(),
		Timezone: "",
		Report: ReportConfig{
			CacheTTLSeconds: 300,
			WatchDebounceMS: 1000,
		},
		UI: UIConfig{
			Color: true,
			Width: 72,
		},
		Tracing: tracing.DefaultConfig(),
		Flags:   map[string]bool{},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".moodlog"
	}
	return filepath.Join(home, ".moodlog")
}

// DBPath returns the SQLite database path under the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "moodlog.db")
}

// LogPath returns the debug log path under the data directory.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "debug.log")
}

// defaultConfig is the commented starter file written on first run.
const defaultConfig = `# moodlog configuration
#
# data_dir holds the journal database and logs.
# data_dir: ~/.moodlog

# user_id is generated on first run; do not edit.

# timezone: Asia/Seoul

report:
  cache_ttl_seconds: 300
  watch_debounce_ms: 1000

ui:
  color: true
  width: 72

# tracing:
#   enabled: true
#   exporter: file          # file, stdout, otlp or none
#   otlp_endpoint: localhost:4317

# flags:
#   report-cache: true
#   db-watch: true
`

// WriteDefaultConfig creates a commented starter config at path.
// Parent directories are created as needed; an existing file is an error.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
