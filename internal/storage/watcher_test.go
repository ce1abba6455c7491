package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/serverfailure71/CaffeineTake/internal/ui/preferences"
)

func startWatcher(t *testing.T) *SettingsWatcher {
	t.Helper()
	setupConfigDir(t)
	// SaveSettings creates the config directory the watcher attaches to.
	require.NoError(t, SaveSettings(testAppName, preferences.DefaultSettings()))

	watcher, err := NewSettingsWatcher(testAppName)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	return watcher
}

func TestSettingsWatcherCloseEndsReloadChannel(t *testing.T) {
	watcher := startWatcher(t)

	watcher.Close()

	select {
	case _, open := <-watcher.ReloadChannel():
		require.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("reload channel still open after Close")
	}
}

func TestSettingsWatcherSignalsOnWrite(t *testing.T) {
	watcher := startWatcher(t)
	defer watcher.Close()

	updated := preferences.DefaultSettings()
	updated.LogLevel = "debug"
	require.NoError(t, SaveSettings(testAppName, updated))

	select {
	case _, open := <-watcher.ReloadChannel():
		require.True(t, open)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload signal after settings write")
	}
}
