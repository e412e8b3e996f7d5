package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the cryptodash client.
type Config struct {
	Backend Backend `yaml:"backend"`
	Refresh Refresh `yaml:"refresh"`
	Chart   Chart   `yaml:"chart"`
	Logging Logging `yaml:"logging"`
}

// Backend holds the analytics API endpoint and request settings.
type Backend struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Refresh controls the background price refresh.
type Refresh struct {
	Interval time.Duration `yaml:"interval"`
}

// Chart holds price-history chart defaults.
type Chart struct {
	DefaultDays int    `yaml:"default_days"`
	ExportDir   string `yaml:"export_dir"`
}

// Logging configures the application logger. File is only used by the
// terminal dashboard, which cannot log to stdout.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// AllowedChartDays lists the day ranges offered by the chart selector.
var AllowedChartDays = []int{1, 7, 30, 90, 365}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Backend: Backend{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Refresh: Refresh{
			Interval: 120 * time.Second,
		},
		Chart: Chart{
			DefaultDays: 7,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path on top of
// Default(), and then applies environment variable overrides. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CRYPTODASH_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}

	if v := os.Getenv("CRYPTODASH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CRYPTODASH_TIMEOUT: %w", err)
		}
		cfg.Backend.Timeout = d
	}

	if v := os.Getenv("CRYPTODASH_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CRYPTODASH_REFRESH_INTERVAL: %w", err)
		}
		cfg.Refresh.Interval = d
	}

	if v := os.Getenv("CRYPTODASH_CHART_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CRYPTODASH_CHART_DAYS: %w", err)
		}
		cfg.Chart.DefaultDays = n
	}

	if v := os.Getenv("CRYPTODASH_EXPORT_DIR"); v != "" {
		cfg.Chart.ExportDir = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}

	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive")
	}
	if !ValidChartDays(c.Chart.DefaultDays) {
		return fmt.Errorf("chart.default_days %d must be one of %v", c.Chart.DefaultDays, AllowedChartDays)
	}
	return nil
}

// ValidChartDays reports whether days is one of AllowedChartDays.
func ValidChartDays(days int) bool {
	for _, d := range AllowedChartDays {
		if d == days {
			return true
		}
	}
	return false
}
