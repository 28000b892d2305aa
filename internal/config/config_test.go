package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout_seconds: 5
mongo:
  uri: mongodb://db:27017
  database: salon
redis:
  address: "localhost:6379"
  slots_ttl_seconds: 120
push:
  enabled: true
  project_id: salon-app
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "salon", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout(), "write timeout falls back to default")
	assert.Equal(t, 120*time.Second, cfg.SlotsTTL())
	assert.True(t, cfg.Push.Enabled)
	assert.Equal(t, 20.0, cfg.PushRate())
	assert.Equal(t, 30, cfg.PushBurst())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "balzac", cfg.Mongo.Database)
	assert.Equal(t, 60*time.Second, cfg.SlotsTTL())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_MONGO_URI", "mongodb://secret-host:27017")
	path := writeConfig(t, "mongo:\n  uri: ${TEST_MONGO_URI}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://secret-host:27017", cfg.Mongo.URI)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
