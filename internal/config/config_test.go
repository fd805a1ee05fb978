package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.Collection != defaultCollection {
		t.Fatalf("Collection = %q, want %q", cfg.Collection, defaultCollection)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "  https://catalog.example.org/api/v2  "
collection = "pokemon"
page_size = 40
log_level = "DEBUG"
data_dir = "~/.trove-data"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://catalog.example.org/api/v2" {
		t.Fatalf("BaseURL = %q, want trimmed value", cfg.BaseURL)
	}
	if cfg.Collection != "pokemon" {
		t.Fatalf("Collection = %q, want pokemon", cfg.Collection)
	}
	if cfg.PageSize != 40 {
		t.Fatalf("PageSize = %d, want 40", cfg.PageSize)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug (lowered)", cfg.LogLevel)
	}
	if !strings.HasPrefix(cfg.DataDir, home) {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
}

func TestLoad_InvalidTOMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted invalid TOML, want error")
	}
}

func TestLoad_ZeroPageSizeKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("page_size = 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want default %d", cfg.PageSize, defaultPageSize)
	}
}
