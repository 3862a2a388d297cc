package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "foodshare.sqlite3", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 7, cfg.ExpiringDays)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"missing db path", func(c *Config) { c.DBPath = " " }, true},
		{"missing addr", func(c *Config) { c.Addr = "" }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"upper-case log level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"negative expiring days", func(c *Config) { c.ExpiringDays = -1 }, true},
		{"zero image dimension", func(c *Config) { c.ImageMaxDimension = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodshare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: /var/lib/foodshare.sqlite3\nseed_dir: /srv/seed\naddr: \":9000\"\n"), 0o644))

	t.Setenv("FOODSHARE_ADDR", ":9100")
	t.Setenv("FOODSHARE_EXPIRING_DAYS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/foodshare.sqlite3", cfg.DBPath, "file overrides default")
	assert.Equal(t, "/srv/seed", cfg.SeedDir)
	assert.Equal(t, ":9100", cfg.Addr, "env overrides file")
	assert.Equal(t, 3, cfg.ExpiringDays)
	assert.Equal(t, "info", cfg.LogLevel, "untouched keys keep defaults")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("db: [unterminated\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("FOODSHARE_EXPIRING_DAYS", "soon")
	_, err = Load("")
	assert.Error(t, err)
}
