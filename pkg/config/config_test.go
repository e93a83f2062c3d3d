package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, ":7420", cfg.Server.Address)
	assert.Equal(t, ":7421", cfg.Bridge.Address)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Polling.StatsInterval)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":7420", cfg.Server.Address)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "castdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9000"
redis:
  enabled: true
  address: "redis.local:6379"
  pool_size: 20
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 20, cfg.Redis.PoolSize)
	// Untouched sections keep their defaults.
	assert.Equal(t, ":7421", cfg.Bridge.Address)
	assert.Equal(t, "exports", cfg.Export.Directory)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "castdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ""
`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CASTDECK_SERVER_ADDRESS", ":7777")
	t.Setenv("CASTDECK_LOG_LEVEL", "debug")
	t.Setenv("CASTDECK_JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server address", func(c *Config) { c.Server.Address = "" }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"empty bridge address", func(c *Config) { c.Bridge.Address = "" }},
		{"zero event rate", func(c *Config) { c.Bridge.EventsPerSecond = 0 }},
		{"redis enabled without address", func(c *Config) { c.Redis.Enabled = true; c.Redis.Address = "" }},
		{"empty export directory", func(c *Config) { c.Export.Directory = "" }},
		{"zero stats interval", func(c *Config) { c.Polling.StatsInterval = 0 }},
		{"negative reconnect attempts", func(c *Config) { c.Discovery.ReconnectAttempts = -1 }},
		{"prometheus enabled without port", func(c *Config) { c.Monitoring.PrometheusPort = 0 }},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }},
		{"empty jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"zero token ttl", func(c *Config) { c.Auth.AccessTokenTTL = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
