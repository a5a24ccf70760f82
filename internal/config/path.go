package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir returns the default data directory based on the host OS.
// It prefers standard per-user locations and falls back to a dotdir in
// the user's home directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "todo")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./data"
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Todo")
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "Todo")
		}
		return filepath.Join(homeDir, "AppData", "Local", "Todo")
	}
	return filepath.Join(homeDir, ".todo")
}

// FindUserFile returns the first existing user config file, or "".
// Lookup order: $XDG_CONFIG_HOME/todo/config.toml (or the OS config dir),
// then ~/.todo/config.toml.
func FindUserFile() string {
	var candidates []string
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		candidates = append(candidates, filepath.Join(dir, "todo", "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, ".todo", "config.toml"))
	}
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}
