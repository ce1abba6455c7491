package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/serverfailure71/CaffeineTake/internal/ui/preferences"
)

const testAppName = "CaffeineTakeTest"

func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if _, err := os.UserConfigDir(); err != nil {
		t.Skipf("user config dir not overridable on this platform: %v", err)
	}
	return dir
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	setupConfigDir(t)

	settings, err := LoadSettings(testAppName)
	require.NoError(t, err)
	require.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadSettingsMalformedFileReturnsDefaultsAndError(t *testing.T) {
	setupConfigDir(t)

	path, err := SettingsPath(testAppName)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("enabled: [not: valid"), 0o644))

	settings, err := LoadSettings(testAppName)
	require.Error(t, err)
	require.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettingsRoundTrip(t *testing.T) {
	setupConfigDir(t)

	saved := preferences.DefaultSettings()
	saved.Enabled.KeepDisplayOn = false
	saved.Auto.DisableOnLockScreen = false
	saved.Auto.ScanInterval = 7 * time.Second
	saved.Auto.ProcessNames = []string{"ffmpeg", "handbrake"}
	saved.Auto.IdleThreshold = 90 * time.Second
	saved.Timer.Duration = 45 * time.Minute
	saved.RunAtStartup = true
	saved.LogLevel = "debug"

	require.NoError(t, SaveSettings(testAppName, saved))

	loaded, err := LoadSettings(testAppName)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestLoadSettingsIgnoresNonPositiveDurations(t *testing.T) {
	setupConfigDir(t)

	path, err := SettingsPath(testAppName)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	raw := "auto:\n  scan_interval_seconds: 0\ntimer:\n  duration_minutes: -5\nlog_level: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings, err := LoadSettings(testAppName)
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	require.Equal(t, defaults.Auto.ScanInterval, settings.Auto.ScanInterval)
	require.Equal(t, defaults.Timer.Duration, settings.Timer.Duration)
	require.Equal(t, defaults.LogLevel, settings.LogLevel)
}
