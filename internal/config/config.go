// Package config loads foodshare settings from defaults, an optional YAML
// file and FOODSHARE_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db" env:"DB"`
	// SeedDir holds the CSV seed files used to populate an empty database.
	SeedDir string `yaml:"seed_dir" env:"SEED_DIR"`
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr" env:"ADDR"`
	// LogPath, if set, receives a copy of all log output.
	LogPath string `yaml:"log" env:"LOG"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// ExpiringDays is the default window for the expiring listings query.
	ExpiringDays int `yaml:"expiring_days" env:"EXPIRING_DAYS"`
	// ImageMaxDimension bounds the width and height of stored listing photos.
	ImageMaxDimension int `yaml:"image_max_dimension" env:"IMAGE_MAX_DIMENSION"`
}

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "FOODSHARE_"

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() *Config {
	return &Config{
		DBPath:            "foodshare.sqlite3",
		SeedDir:           ".",
		Addr:              ":8080",
		LogLevel:          "info",
		ExpiringDays:      7,
		ImageMaxDimension: 1024,
	}
}

// Load builds the configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("listen address is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.ExpiringDays < 0 {
		return fmt.Errorf("expiring_days must not be negative")
	}
	if c.ImageMaxDimension <= 0 {
		return fmt.Errorf("image_max_dimension must be positive")
	}
	return nil
}
