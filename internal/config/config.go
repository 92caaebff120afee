// Package config manages the on-disk configuration record for Plank.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"plank/internal/store"
)

const (
	// DirName is the directory under <home>/.config holding the config file.
	DirName = "plank"
	// FileName is the fixed config file name.
	FileName = "config.json"
)

// Config is the default key-value configuration payload. It is written
// once at first run; the core only ever rewrites it back to its
// default content on reset.
type Config struct {
	// SaveDirectory is where versioned board snapshots are kept.
	SaveDirectory string `json:"save_directory"`
	// DefaultBoardName names the board created when no save exists.
	DefaultBoardName string `json:"default_board_name"`
	// AlwaysLoadLatest selects the newest save version on startup.
	AlwaysLoadLatest bool `json:"always_load_latest"`
	// TickRateMs is the UI refresh interval in milliseconds.
	TickRateMs int `json:"tick_rate_ms"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		SaveDirectory:    store.DefaultDir(),
		DefaultBoardName: "Default Board",
		AlwaysLoadLatest: true,
		TickRateMs:       250,
	}
}

// TickRate returns the UI refresh interval as a duration.
func (c *Config) TickRate() time.Duration {
	if c.TickRateMs <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.TickRateMs) * time.Millisecond
}

// DefaultPath returns <home>/.config/plank/config.json.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", DirName, FileName), nil
}

// Load reads the config at path, falling back to the default on any
// read or decode error. It never fails the caller.
func Load(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save writes cfg to path, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// EnsureDefault writes the default config to path only if no file
// exists there yet. An existing file is left untouched.
func EnsureDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return Save(path, Default())
}

// Reset restores the config file at path to its default content.
func Reset(path string) error {
	return Save(path, Default())
}
