package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointConfigHome isolates the test from the real user config by pointing
// XDG_CONFIG_HOME at a temp directory and resetting viper's global state.
func pointConfigHome(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(func() {
		xdg.Reload()
	})

	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	pointConfigHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Cache.Directory)
	assert.Equal(t, DefaultRetries, cfg.Fetch.Retries)
	assert.Equal(t, time.Duration(DefaultTimeout), cfg.Fetch.Timeout)
	assert.True(t, cfg.Fetch.Progress)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := pointConfigHome(t)

	dir := filepath.Join(home, "gittar")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := []byte("fetch:\n  retries: 2\n  timeout: 30s\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Fetch.Retries)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	pointConfigHome(t)
	t.Setenv("GITTAR_FETCH_RETRIES", "5")
	t.Setenv("GITTAR_CACHE_DIRECTORY", "/tmp/gittar-cache")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Fetch.Retries)
	assert.Equal(t, "/tmp/gittar-cache", cfg.Cache.Directory)
}

func TestValidate_ClampsAndFills(t *testing.T) {
	cfg := &Config{
		Fetch: FetchConfig{Retries: -3, Timeout: -time.Second},
	}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0, cfg.Fetch.Retries)
	assert.Equal(t, time.Duration(0), cfg.Fetch.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
}

func TestWriteDefault(t *testing.T) {
	home := pointConfigHome(t)

	path, err := WriteDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "gittar", "config.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "retries: 0")

	// A second run must not clobber the existing file.
	_, err = WriteDefault()
	assert.Error(t, err)
}
