package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "data/inventory.json", cfg.DataFile)
	assert.Equal(t, "data/inventory.db", cfg.DBPath)
	assert.Equal(t, "data/inventory.log", cfg.AuditFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HELDENINV_LISTEN_ADDR", ":9999")
	t.Setenv("HELDENINV_STORAGE_BACKEND", "sqlite")
	t.Setenv("HELDENINV_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "listen_addr: \":7070\"\nstorage_backend: sqlite\ndb_path: /tmp/test.db\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	// Untouched keys keep their defaults.
	assert.Equal(t, "data/inventory.json", cfg.DataFile)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidBackend(t *testing.T) {
	t.Setenv("HELDENINV_STORAGE_BACKEND", "postgres")

	_, err := Load("")
	assert.Error(t, err)
}
