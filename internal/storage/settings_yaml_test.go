package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rudd/internal/core/model"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rudd", settingsFileName)

	settings, found, err := LoadSettings(path)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rudd", settingsFileName)
	want := model.DefaultSettings()
	want.Unit = time.Second
	want.CancelRetryDelay = 0
	want.LogLevel = "debug"
	want.LogFile = "/tmp/rudd.log"

	require.NoError(t, SaveSettings(path, want))

	got, found, err := LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("unit_seconds: 2\nlog_level: verbose\n"), 0o644))

	got, found, err := LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, found)

	want := model.DefaultSettings()
	want.Unit = 2 * time.Second
	want.LogLevel = "verbose"
	assert.Equal(t, want, got)
}

func TestInvalidValuesIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	body := "unit_seconds: -5\ncancel_retry_ms: -1\nmax_pending_timers: 0\npulse_ms: -20\ntone_hz: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	got, _, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("unit_seconds: [oops\n"), 0o644))

	settings, found, err := LoadSettings(path)
	assert.Error(t, err)
	assert.True(t, found)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSettingsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	path, err := SettingsPath("rudd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("rudd", settingsFileName), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
