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
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
app:
  name: shareit
  environment: test
server:
  port: 7070
gateway:
  server_url: http://localhost:7070
database:
  path: test.db
logging:
  level: debug
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "shareit", cfg.App.Name)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://localhost:7070", cfg.Gateway.ServerURL)
	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Defaults(t *testing.T) {
	configPath := writeConfig(t, `
gateway:
  server_url: http://localhost:9090
database:
  path: test.db
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, 120, cfg.Gateway.CacheTTL)
	assert.Equal(t, float64(10), cfg.Gateway.RateLimit.RPS)
	assert.Equal(t, 5, cfg.Gateway.RateLimit.Burst)
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "expanded.db")

	configPath := writeConfig(t, `
gateway:
  server_url: http://localhost:9090
database:
  path: ${TEST_DB_PATH}
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "expanded.db", cfg.Database.Path)
}

func TestLoad_MissingRequired(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: test.db
`)

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_url")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
