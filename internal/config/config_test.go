package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDataDir(), cfg.DataDir)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.DebugMode)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /tmp/fieldbook-test
catalog:
  source: /tmp/species.json
  watch: false
ui:
  dark_mode: true
logging:
  debug_mode: true
  level: debug
  categories:
    store: false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fieldbook-test", cfg.DataDir)
	assert.Equal(t, "/tmp/species.json", cfg.Catalog.Source)
	assert.False(t, cfg.Catalog.Watch)
	assert.True(t, cfg.UI.DarkMode)
	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, map[string]bool{"store": false}, cfg.Logging.Categories)
}

func TestLoadMalformedYAMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIELDBOOK_DATA_DIR", "/tmp/env-data")
	t.Setenv("FIELDBOOK_CATALOG", "https://example.org/species.json")
	t.Setenv("FIELDBOOK_DARK_MODE", "1")
	t.Setenv("FIELDBOOK_DEBUG", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-data", cfg.DataDir)
	assert.Equal(t, "https://example.org/species.json", cfg.Catalog.Source)
	assert.True(t, cfg.UI.DarkMode)
	assert.True(t, cfg.Logging.DebugMode)
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/fieldbook-test"
	assert.Equal(t, "/tmp/fieldbook-test/fieldbook.db", cfg.DatabasePath())

	t.Setenv("FIELDBOOK_DB", "/elsewhere/custom.db")
	assert.Equal(t, "/elsewhere/custom.db", cfg.DatabasePath())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)

	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.Catalog.Source = "species.json"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "species.json", loaded.Catalog.Source)
}
