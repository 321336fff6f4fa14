package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("REDLINE_ENV", "")
	assert.Equal(t, "config/config.development.json", DefaultPath())

	t.Setenv("REDLINE_ENV", "production")
	assert.Equal(t, "config/config.production.json", DefaultPath())
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"server": {"host": "127.0.0.1", "port": 8080},
		"database": {"path": "/tmp/redline"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Diff.ContextLines)
	assert.Equal(t, 5, cfg.Diff.MinGap)
	assert.Equal(t, 128, cfg.Vault.CacheSize)
	assert.Equal(t, 4<<20, cfg.MaxDocumentBytes)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
