// Package config provides configuration management for the books-admin
// CLI. Settings come from an optional YAML config file, with environment
// variables and .env files taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = ".config/books-admin/config.yaml"

// Config represents the application configuration.
type Config struct {
	API      APIConfig   `yaml:"api"`
	Local    LocalConfig `yaml:"local"`
	Currency string      `yaml:"currency"`
	Debug    bool        `yaml:"debug"`
}

// APIConfig represents backend API configuration.
type APIConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"-"` // environment only, never read from the file
}

// LocalConfig represents local file locations.
type LocalConfig struct {
	TokenPath  string `yaml:"token_path"`
	SnapshotDB string `yaml:"snapshot_db"`
}

// Load loads configuration. It reads the YAML config file when present
// (an explicitly given path must exist; the default path is optional),
// loads a .env file from the current directory if available, then
// applies environment variable overrides.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		API:      APIConfig{URL: "http://localhost:5000/api"},
		Currency: "USD",
	}

	explicit := configPath != ""
	if configPath == "" {
		home, _ := os.UserHomeDir()
		configPath = filepath.Join(home, defaultConfigPath)
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No default config file is fine.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Try to load .env from current directory (ignore error if not found)
	_ = godotenv.Load()

	if v := os.Getenv("BOOKS_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("BOOKS_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("BOOKS_TOKEN_PATH"); v != "" {
		cfg.Local.TokenPath = v
	}
	if v := os.Getenv("BOOKS_SNAPSHOT_DB"); v != "" {
		cfg.Local.SnapshotDB = v
	}
	if v := os.Getenv("BOOKS_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, nil
}

// SnapshotDBPath returns the snapshot database path, defaulting to
// ~/.config/books-admin/snapshot.db.
func (c *Config) SnapshotDBPath() string {
	if c.Local.SnapshotDB != "" {
		return c.Local.SnapshotDB
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "books-admin", "snapshot.db")
}

// Validate validates the configuration.
// It checks that all named settings are set.
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, key := range required {
		var value string
		switch key {
		case "api.url":
			value = c.API.URL
		case "currency":
			value = c.Currency
		case "local.tokenPath":
			value = c.Local.TokenPath
		case "local.snapshotDb":
			value = c.Local.SnapshotDB
		default:
			return fmt.Errorf("unknown configuration key: %s", key)
		}

		if value == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your config file or environment variables", missing)
	}

	return nil
}
