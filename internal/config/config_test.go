package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meander/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meander.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Model.Steps)
	assert.Equal(t, 5, cfg.Model.TopK)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_PartialFileOverridesOnlyItsKeys(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
model:
  top_k: 10
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Model.TopK)
	// Untouched keys keep their defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Model.Steps)
}

func TestLoad_RedisWithDuration(t *testing.T) {
	path := writeConfig(t, `
redis:
  addr: localhost:6379
  prefix: "acme:"
  ttl: 24h
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "acme:", cfg.Redis.Prefix)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")
	_, err := config.Load(path)
	assert.Error(t, err)
}
