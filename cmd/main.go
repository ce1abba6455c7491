package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/serverfailure71/CaffeineTake/internal/core/coordinator"
	"github.com/serverfailure71/CaffeineTake/internal/core/model"
	"github.com/serverfailure71/CaffeineTake/internal/logging"
	"github.com/serverfailure71/CaffeineTake/internal/platform"
	"github.com/serverfailure71/CaffeineTake/internal/storage"
	"github.com/serverfailure71/CaffeineTake/internal/ui/about"
	"github.com/serverfailure71/CaffeineTake/internal/ui/preferences"
	"github.com/serverfailure71/CaffeineTake/internal/ui/tray"
	"github.com/serverfailure71/CaffeineTake/resources"
)

const appName = "CaffeineTake"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, loadErr := storage.LoadSettings(appName)

	logDir := ""
	if configDir, err := os.UserConfigDir(); err == nil {
		logDir = filepath.Join(configDir, appName)
	}
	logging.Init(logging.Config{LogDir: logDir, Level: settings.LogLevel})
	logger := logging.ForComponent(logging.CompMain)
	logger.Info("starting", "version", about.Version)

	if loadErr != nil {
		logger.Warn("settings unavailable, using defaults", "error", loadErr)
	}

	fyneApp := app.NewWithID("com.serverfailure71.caffeinetake")
	fyneApp.SetIcon(resources.AppIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	coord := coordinator.New(
		platform.NewKeepAwake(),
		settings.CoordinatorConfig(),
		logging.ForComponent(logging.CompCoordinator),
	)
	coord.SetActivityChecker(platform.NewActivityMonitor())
	defer coord.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionMonitor := platform.NewSessionMonitor()
	if locked, err := sessionMonitor.IsLocked(); err == nil {
		if locked {
			coord.OnSessionLocked()
		}
	} else if !errors.Is(err, platform.ErrSessionUnsupported) {
		logger.Warn("session state query failed", "error", err)
	}
	if err := sessionMonitor.Start(ctx, platform.SessionCallbacks{
		OnLocked:   coord.OnSessionLocked,
		OnUnlocked: coord.OnSessionUnlocked,
	}); err != nil {
		logger.Warn("session notifications unavailable, lock-screen suppression disabled", "error", err)
	}

	platformService := platform.NewService()
	applyAutostart(platformService, settings)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, updated); err != nil {
			logger.Error("save settings failed", "error", err)
		}
		coord.UpdateConfig(updated.CoordinatorConfig())
		coord.RefreshExecutionState()
		applyAutostart(platformService, updated)
	})

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnSelectMode: func(mode model.Mode) {
			coord.SetMode(mode)
		},
		OnPreferences: prefsWindow.Show,
		OnAbout: func() {
			about.Show(fyneApp)
		},
		OnQuit: func() {
			cancel()
			coord.Shutdown()
			fyneApp.Quit()
		},
	})

	events := coord.Subscribe(8)
	trayLog := logging.ForComponent(logging.CompTray)
	go func() {
		for event := range events {
			event := event
			trayLog.Debug("tray update", "mode", event.Mode.String(), "state", event.State.String())
			fyne.Do(func() {
				trayManager.SetState(event.Mode, event.State)
			})
		}
	}()

	stopWatcher := watchSettings(coord, prefsWindow, &settings, logger)
	defer stopWatcher()

	coord.SetMode(model.ModeDisabled)

	fyneApp.Run()
}

// watchSettings reloads external edits of the settings file and pushes
// them into the coordinator and the preferences window.
func watchSettings(coord *coordinator.Coordinator, prefsWindow *preferences.Window, settings *preferences.Settings, logger *slog.Logger) func() {
	watcher, err := storage.NewSettingsWatcher(appName)
	if err != nil {
		logger.Warn("settings watcher unavailable", "error", err)
		return func() {}
	}
	if err := watcher.Start(); err != nil {
		logger.Warn("settings watcher unavailable", "error", err)
		watcher.Close()
		return func() {}
	}

	go func() {
		for range watcher.ReloadChannel() {
			reloaded, err := storage.LoadSettings(appName)
			if err != nil {
				logger.Warn("settings reload failed", "error", err)
				continue
			}
			coord.UpdateConfig(reloaded.CoordinatorConfig())
			coord.RefreshExecutionState()
			fyne.Do(func() {
				*settings = reloaded
				prefsWindow.UpdateSettings(reloaded)
			})
		}
	}()

	return watcher.Close
}

func applyAutostart(service platform.Service, settings preferences.Settings) {
	logger := logging.ForComponent(logging.CompPlatform)
	if settings.RunAtStartup {
		execPath, err := os.Executable()
		if err != nil {
			logger.Warn("resolve executable for autostart", "error", err)
			return
		}
		if err := service.EnableAutostart(appName, execPath); err != nil {
			logger.Warn("enable autostart", "error", err)
		}
		return
	}
	if err := service.DisableAutostart(appName); err != nil {
		logger.Warn("disable autostart", "error", err)
	}
}
