package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nickc01/rvc-model-fetcher/internal/catalog"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Remote.BaseURL != catalog.DefaultBaseURL {
		t.Errorf("base url = %s, want default", cfg.Remote.BaseURL)
	}
	if cfg.Fetch.RootDir != "." {
		t.Errorf("root dir = %s, want .", cfg.Fetch.RootDir)
	}
	if cfg.Fetch.ChunkSize != 8192 {
		t.Errorf("chunk size = %d, want 8192", cfg.Fetch.ChunkSize)
	}
	if cfg.History.Enabled {
		t.Error("history must be disabled by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v, want info/console", cfg.Logging)
	}
	if got := cfg.Fetch.GetProgressInterval(); got != 500*time.Millisecond {
		t.Errorf("progress interval = %v, want 500ms", got)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
remote:
  base_url: https://mirror.example.test/models
fetch:
  root_dir: /srv/models
  chunk_size: 16384
history:
  enabled: true
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Remote.BaseURL != "https://mirror.example.test/models" {
		t.Errorf("base url = %s", cfg.Remote.BaseURL)
	}
	if cfg.Fetch.RootDir != "/srv/models" || cfg.Fetch.ChunkSize != 16384 {
		t.Errorf("fetch = %+v", cfg.Fetch)
	}
	if !cfg.History.Enabled {
		t.Error("history.enabled not read from file")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Remote.BaseURL = "" }},
		{"malformed base url", func(c *Config) { c.Remote.BaseURL = "not a url" }},
		{"empty root dir", func(c *Config) { c.Fetch.RootDir = "" }},
		{"non-positive chunk size", func(c *Config) { c.Fetch.ChunkSize = 0 }},
		{"bad progress interval", func(c *Config) { c.Fetch.ProgressInterval = "soon" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
