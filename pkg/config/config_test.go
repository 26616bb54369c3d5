package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"BOOKS_API_URL", "BOOKS_API_TOKEN", "BOOKS_CURRENCY", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
	_ = cfg

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "http://localhost:5000/api" {
		t.Errorf("API.URL = %q, want default", cfg.API.URL)
	}
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", cfg.Currency)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api:
  url: https://books.example.com/api
local:
  token_path: /tmp/token.json
currency: EUR
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BOOKS_API_URL", "")
	t.Setenv("BOOKS_CURRENCY", "GBP")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "https://books.example.com/api" {
		t.Errorf("API.URL = %q, want file value", cfg.API.URL)
	}
	if cfg.Local.TokenPath != "/tmp/token.json" {
		t.Errorf("TokenPath = %q", cfg.Local.TokenPath)
	}
	if cfg.Currency != "GBP" {
		t.Errorf("Currency = %q, want env override GBP", cfg.Currency)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{API: APIConfig{URL: "http://localhost:5000/api"}}

	if err := cfg.Validate("api.url"); err != nil {
		t.Errorf("Validate(api.url) error = %v", err)
	}
	if err := cfg.Validate("currency"); err == nil {
		t.Error("Validate(currency) expected error for empty value")
	}
	if err := cfg.Validate("no.such.key"); err == nil {
		t.Error("Validate(no.such.key) expected error")
	}
}
