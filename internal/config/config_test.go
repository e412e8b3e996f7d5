package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CRYPTODASH_BASE_URL", "CRYPTODASH_TIMEOUT", "CRYPTODASH_REFRESH_INTERVAL",
		"CRYPTODASH_CHART_DAYS", "CRYPTODASH_EXPORT_DIR", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	yamlContent := []byte(`
backend:
  base_url: "http://api.example.com:5000"
  timeout: 10s
refresh:
  interval: 2m
chart:
  default_days: 30
  export_dir: "/tmp/cryptodash/charts"
logging:
  level: "debug"
  format: "json"
  file: "/tmp/cryptodash.log"
`)

	path := filepath.Join(t.TempDir(), "cryptodash.yaml")
	if err := os.WriteFile(path, yamlContent, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// -- Backend --
	if cfg.Backend.BaseURL != "http://api.example.com:5000" {
		t.Errorf("Backend.BaseURL = %q, want %q", cfg.Backend.BaseURL, "http://api.example.com:5000")
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Errorf("Backend.Timeout = %v, want %v", cfg.Backend.Timeout, 10*time.Second)
	}

	// -- Refresh --
	if cfg.Refresh.Interval != 2*time.Minute {
		t.Errorf("Refresh.Interval = %v, want %v", cfg.Refresh.Interval, 2*time.Minute)
	}

	// -- Chart --
	if cfg.Chart.DefaultDays != 30 {
		t.Errorf("Chart.DefaultDays = %d, want %d", cfg.Chart.DefaultDays, 30)
	}
	if cfg.Chart.ExportDir != "/tmp/cryptodash/charts" {
		t.Errorf("Chart.ExportDir = %q, want %q", cfg.Chart.ExportDir, "/tmp/cryptodash/charts")
	}

	// -- Logging --
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Refresh.Interval != 120*time.Second {
		t.Errorf("Refresh.Interval = %v, want 120s", cfg.Refresh.Interval)
	}
	if cfg.Chart.DefaultDays != 7 {
		t.Errorf("Chart.DefaultDays = %d, want 7", cfg.Chart.DefaultDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRYPTODASH_BASE_URL", "https://dash.example.org")
	t.Setenv("CRYPTODASH_TIMEOUT", "5s")
	t.Setenv("CRYPTODASH_REFRESH_INTERVAL", "30s")
	t.Setenv("CRYPTODASH_CHART_DAYS", "1")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Backend.BaseURL != "https://dash.example.org" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("Backend.Timeout = %v, want 5s", cfg.Backend.Timeout)
	}
	if cfg.Refresh.Interval != 30*time.Second {
		t.Errorf("Refresh.Interval = %v, want 30s", cfg.Refresh.Interval)
	}
	if cfg.Chart.DefaultDays != 1 {
		t.Errorf("Chart.DefaultDays = %d, want 1", cfg.Chart.DefaultDays)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestEnvOverrideBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRYPTODASH_TIMEOUT", "soon")

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() should fail on an unparsable CRYPTODASH_TIMEOUT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.Backend.BaseURL = "/api" }},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }},
		{"zero interval", func(c *Config) { c.Refresh.Interval = 0 }},
		{"odd chart days", func(c *Config) { c.Chart.DefaultDays = 14 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}
