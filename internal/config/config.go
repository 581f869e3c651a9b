// ABOUTME: Healthtwin configuration with storage backend selection.
// ABOUTME: JSON config file at the XDG path plus HEALTHTWIN_* env overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/healthtwin/internal/storage"
)

// Config stores healthtwin tool configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default), "dir"
	// (one JSON file per patient), or "charm" (cloud-synced KV).
	Backend string `json:"backend,omitempty" env:"HEALTHTWIN_BACKEND"`

	// DataDir is the root directory for data storage. The badger backend
	// puts its database under patients/, the dir backend puts one JSON
	// file per patient under profiles/, and wearable import backups go
	// under wearable_data/. Supports ~ expansion. Defaults to
	// ~/.local/share/healthtwin.
	DataDir string `json:"data_dir,omitempty" env:"HEALTHTWIN_DATA_DIR"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "badger"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// WearableDir returns the directory for per-batch wearable CSV backups.
func (c *Config) WearableDir() string {
	return filepath.Join(c.GetDataDir(), "wearable_data")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore creates a Store implementation based on the configured backend.
func (c *Config) OpenStore() (storage.Store, error) {
	switch c.GetBackend() {
	case "badger":
		return storage.OpenBadger(filepath.Join(c.GetDataDir(), "patients"))
	case "dir":
		return storage.NewDirStore(filepath.Join(c.GetDataDir(), "profiles"))
	case "charm":
		return storage.OpenCharm()
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthtwin", "config.json")
}

// Load reads config from disk, then applies environment overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
