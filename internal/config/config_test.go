package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDecodesDurations(t *testing.T) {
	content := `
app:
  name: test
  env: development
server:
  port: 9090
  read_timeout: 30s
  write_timeout: 60s
  shutdown_timeout: 15s
database:
  host: db
  port: 3306
  max_connections: 25
  connection_lifetime: 5m
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnectionLifetime)
}

// The shipped config.yaml must decode against the struct tags; a key
// that silently falls back to a zero value is a misconfiguration.
func TestLoadShippedConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join("..", "..", "config.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.NotZero(t, cfg.Server.Port)
	assert.NotZero(t, cfg.Server.ReadTimeout)
	assert.NotZero(t, cfg.Server.ShutdownTimeout)
	assert.NotZero(t, cfg.Database.ConnectionLifetime)
	assert.NotZero(t, cfg.Database.MaxConnections)
	assert.NotEmpty(t, cfg.Redis.CleanupQueue)
	assert.NotEmpty(t, cfg.Upload.AllowedExtensions)
	assert.NotEmpty(t, cfg.Lookup.StatesFile)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
