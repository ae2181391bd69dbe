// Package config handles configuration loading and validation for taskpad.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskpad/internal/core/styles"
)

// Storage backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultMaxTextLength caps task text at the input surface.
const DefaultMaxTextLength = 80

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	TUI     TUIConfig     `yaml:"tui"`
	Tasks   TasksConfig   `yaml:"tasks"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is "file" (one JSON file per key) or "sqlite".
	Backend string `yaml:"backend"`
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// TasksConfig holds task input settings.
type TasksConfig struct {
	// MaxTextLength is enforced by the input surface, not the store.
	MaxTextLength int `yaml:"max_text_length"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendFile},
		TUI:     TUIConfig{Theme: styles.DefaultTheme},
		Tasks:   TasksConfig{MaxTextLength: DefaultMaxTextLength},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = styles.DefaultTheme
	}
	if c.Tasks.MaxTextLength == 0 {
		c.Tasks.MaxTextLength = DefaultMaxTextLength
	}
}
