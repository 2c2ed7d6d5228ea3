package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestDefaultsWithoutConfigFile(t *testing.T) {
	store, err := NewFileStore(tempConfigPath(t))
	require.NoError(t, err)

	cfg, err := New(store)
	require.NoError(t, err)

	assert.True(t, cfg.Cursor().Enabled())
	assert.Empty(t, cfg.Cursor().Color())
	assert.False(t, cfg.Browser().Headless())

	w, h := cfg.Browser().Viewport()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestSettingsPersistAcrossStores(t *testing.T) {
	path := tempConfigPath(t)

	store, err := NewFileStore(path)
	require.NoError(t, err)
	cfg, err := New(store)
	require.NoError(t, err)

	require.NoError(t, cfg.Cursor().SetEnabled(false))
	require.NoError(t, cfg.Cursor().SetColor("#00aaff"))
	require.NoError(t, cfg.Browser().SetHeadless(true))
	require.NoError(t, cfg.Browser().SetViewport(1920, 1080))

	// Re-open from disk as a fresh process would.
	store2, err := NewFileStore(path)
	require.NoError(t, err)
	cfg2, err := New(store2)
	require.NoError(t, err)

	assert.False(t, cfg2.Cursor().Enabled())
	assert.Equal(t, "#00aaff", cfg2.Cursor().Color())
	assert.True(t, cfg2.Browser().Headless())

	w, h := cfg2.Browser().Viewport()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestLoadToleratesPartialSections(t *testing.T) {
	path := tempConfigPath(t)
	raw := []byte(`{"version":"1.0","sections":{"cursor":{"enabled":false}}}`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	cfg, err := New(store)
	require.NoError(t, err)

	assert.False(t, cfg.Cursor().Enabled())
	// Absent keys keep their defaults.
	assert.Empty(t, cfg.Cursor().Color())
	w, h := cfg.Browser().Viewport()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestNewFileStoreRejectsCorruptFile(t *testing.T) {
	path := tempConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestGlobalInitialize(t *testing.T) {
	require.NoError(t, Initialize(tempConfigPath(t)))

	assert.True(t, IsInitialized())
	require.NotNil(t, GetCursor())
	require.NotNil(t, GetBrowser())
	assert.True(t, GetCursor().Enabled())
}
