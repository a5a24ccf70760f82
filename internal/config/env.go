package config

import (
	"os"
	"strconv"
)

// FromEnv overlays TODO_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("TODO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TODO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TODO_KEY"); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_SEED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Seed = b
		}
	}
	if v := os.Getenv("TODO_MAX_TITLE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTitleLength = n
		}
	}
	if v := os.Getenv("TODO_PEBBLE_FSYNC"); v != "" {
		cfg.Pebble.Fsync = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}
