package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "port: 9000\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Contains(t, cfg.DSN, "tcp(127.0.0.1:3306)/regwatch")
	assert.Contains(t, cfg.DSN, "parseTime=true")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 3600, cfg.Monitor.IntervalSeconds)
	assert.Equal(t, 30, cfg.Monitor.FetchTimeoutSeconds)
}

func TestLoadTopLevelShortcutsWin(t *testing.T) {
	path := writeConfig(t, `
port: 8000
dsn: "user:pw@tcp(db:3306)/compliance?parseTime=True"
redis_url: "cache:6380/2"
database:
  host: ignored-host
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "user:pw@tcp(db:3306)/compliance?parseTime=True", cfg.DSN)
	assert.Equal(t, "redis://cache:6380/2", cfg.RedisURL)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, "port: 99999\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "port: 8000\nnot_a_field: true\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadAIAndMonitorSections(t *testing.T) {
	path := writeConfig(t, `
port: 8000
ai:
  timeout_seconds: 90
  providers:
    - id: main
      type: anthropic
      api_key: sk-test
      default_model: claude-haiku-4-5-20251001
      enabled: true
monitor:
  interval_seconds: 600
  fetch_timeout_seconds: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "anthropic", cfg.AI.Providers[0].Type)
	assert.True(t, cfg.AI.Providers[0].Enabled)
	assert.Equal(t, 90, cfg.AI.TimeoutSeconds)
	assert.Equal(t, 600, cfg.Monitor.IntervalSeconds)
	assert.Equal(t, 10, cfg.Monitor.FetchTimeoutSeconds)
}

func TestRedisURLValueWithAuth(t *testing.T) {
	cfg := normalizeRedisConfig(RedisRuntimeConfig{
		Host:     "redis.internal",
		Port:     6379,
		Password: "secret",
		TLS:      true,
	})
	assert.Equal(t, "rediss://:secret@redis.internal:6379/0", cfg.URLValue())
}
