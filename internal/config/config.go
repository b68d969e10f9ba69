// Package config holds fieldbook configuration: where the species catalog
// comes from, where user data lives, and how logging behaves. Configuration
// is read from <data-dir>/config.yaml with sensible defaults when the file
// is absent, then overridden by FIELDBOOK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all fieldbook configuration.
type Config struct {
	// DataDir is where the database, logs, and config file live.
	// Defaults to ~/.fieldbook.
	DataDir string `yaml:"data_dir"`

	// Catalog configuration.
	Catalog CatalogConfig `yaml:"catalog"`

	// UI configuration.
	UI UIConfig `yaml:"ui"`

	// Logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig describes the species catalog source.
type CatalogConfig struct {
	// Source is a local file path or http(s) URL serving a JSON array of
	// species. When empty or unreachable the built-in fallback is used.
	Source string `yaml:"source"`

	// Watch reloads a file-backed catalog when it changes on disk.
	Watch bool `yaml:"watch"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// DarkMode forces the dark theme. When unset the theme is detected
	// from the terminal.
	DarkMode bool `yaml:"dark_mode"`
}

// LoggingConfig mirrors logging.Options.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultDataDir returns ~/.fieldbook, or .fieldbook in the working
// directory if the home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fieldbook"
	}
	return filepath.Join(home, ".fieldbook")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Catalog: CatalogConfig{
			Source: "",
			Watch:  true,
		},
		UI: UIConfig{},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating the directory if
// needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies FIELDBOOK_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("FIELDBOOK_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if src := os.Getenv("FIELDBOOK_CATALOG"); src != "" {
		c.Catalog.Source = src
	}
	if os.Getenv("FIELDBOOK_DARK_MODE") == "1" {
		c.UI.DarkMode = true
	}
	if os.Getenv("FIELDBOOK_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}

// DatabasePath returns the sqlite database path under the data directory.
func (c *Config) DatabasePath() string {
	if path := os.Getenv("FIELDBOOK_DB"); path != "" {
		return path
	}
	return filepath.Join(c.DataDir, "fieldbook.db")
}

// ConfigPath returns the canonical config file location for a data dir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// Validate checks invariants that would make the session unusable.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	return nil
}
