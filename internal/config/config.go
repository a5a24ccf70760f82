package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Backend names accepted in Config.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendPebble = "pebble"
	BackendMemory = "memory"
)

// Config is the top-level configuration loaded from file/env/flags.
type Config struct {
	DataDir        string `toml:"data_dir" yaml:"data_dir" json:"data_dir"`
	Backend        string `toml:"backend" yaml:"backend" json:"backend"`
	Key            string `toml:"key" yaml:"key" json:"key"`
	Theme          string `toml:"theme" yaml:"theme" json:"theme"`
	Seed           bool   `toml:"seed" yaml:"seed" json:"seed"`
	MaxTitleLength int    `toml:"max_title_length" yaml:"max_title_length" json:"max_title_length"`

	Pebble  PebbleConfig  `toml:"pebble" yaml:"pebble" json:"pebble"`
	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging"`
}

// PebbleConfig tunes the pebble backend.
type PebbleConfig struct {
	Fsync string `toml:"fsync" yaml:"fsync" json:"fsync"` // always|interval|never
}

// LoggingConfig controls the charmbracelet/log logger.
type LoggingConfig struct {
	Level      string `toml:"level" yaml:"level" json:"level"`
	Format     string `toml:"format" yaml:"format" json:"format"` // text|json|logfmt
	File       string `toml:"file" yaml:"file" json:"file"`       // empty: stderr, or <data_dir>/todo.log for the TUI
	Timestamps bool   `toml:"timestamps" yaml:"timestamps" json:"timestamps"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DataDir:        DefaultDataDir(),
		Backend:        BackendFile,
		Key:            "ToDoApp",
		Theme:          "light",
		Seed:           true,
		MaxTitleLength: 30,
		Pebble:         PebbleConfig{Fsync: "always"},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration from a TOML, YAML or JSON file (by extension)
// on top of Default(). If path is empty, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	default:
		err = toml.Unmarshal(b, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields and limits.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendPebble, BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q; use file|sqlite|pebble|memory", c.Backend)
	}
	if c.Backend != BackendMemory && c.DataDir == "" {
		return fmt.Errorf("data_dir is required for the %s backend", c.Backend)
	}
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("key must not be empty")
	}
	switch strings.ToLower(c.Theme) {
	case "light", "dark":
	default:
		return fmt.Errorf("invalid theme %q; use light|dark", c.Theme)
	}
	if c.MaxTitleLength <= 0 {
		return fmt.Errorf("max_title_length must be positive, got %d", c.MaxTitleLength)
	}
	switch c.Pebble.Fsync {
	case "", "always", "interval", "never":
	default:
		return fmt.Errorf("invalid pebble.fsync %q; use always|interval|never", c.Pebble.Fsync)
	}
	switch c.Logging.Format {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid logging.format %q; use text|json|logfmt", c.Logging.Format)
	}
	return nil
}
