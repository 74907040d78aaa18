package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Theme, cfg.Theme)
	assert.Equal(t, "http://google.com", cfg.StartPage)
	assert.Equal(t, 15*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 50, cfg.PageCacheSize)
	assert.Equal(t, path, cfg.Path())

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults should be written on first load")
}

func TestLoadFailsWhenDefaultsCannotBeWritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	// A dangling link: the file looks missing but cannot be created.
	if err := os.Symlink(filepath.Join(dir, "missing", "config.json"), path); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	cfg, err := Load(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "writing default config")
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "theme": "solarized",
  "start_page": "https://example.com",
  "probe_timeout": "3s",
  "page_cache_size": 8,
  "log_level": "debug"
}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "solarized", cfg.Theme)
	assert.Equal(t, "https://example.com", cfg.StartPage)
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 8, cfg.PageCacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "solarized"}`), 0o644))
	t.Setenv("NAVCORE_THEME", "mono")
	t.Setenv("NAVCORE_PROBE_TIMEOUT", "750ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, 750*time.Millisecond, cfg.ProbeTimeout)
}

func TestLoadPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	t.Setenv("NAVCORE_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"theme": `},
		{"zero cache", `{"page_cache_size": 0}`},
		{"negative timeout", `{"probe_timeout": "-1s"}`},
		{"unknown level", `{"log_level": "loud"}`},
		{"unknown theme", `{"theme": "nord"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Theme = "light"
	cfg.ProbeTimeout = 2 * time.Second
	require.NoError(t, cfg.Save())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", again.Theme)
	assert.Equal(t, 2*time.Second, again.ProbeTimeout)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("")
	assert.Error(t, err)
}

func TestDataDirHonoursXDG(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG layout only applies on Linux/BSD")
	}
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "navcore"), got)
}
