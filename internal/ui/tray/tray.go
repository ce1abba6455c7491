package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
	"github.com/serverfailure71/CaffeineTake/resources"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSelectMode  func(model.Mode)
	OnPreferences func()
	OnAbout       func()
	OnQuit        func()
}

// Manager handles the system tray surface: icon, status line and the
// mode selection menu.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	modeItems  map[model.Mode]*fyne.MenuItem
	mode       model.Mode
	state      model.ExecutionState
}

var menuModes = []model.Mode{
	model.ModeDisabled,
	model.ModeEnabled,
	model.ModeAuto,
	model.ModeTimer,
}

var modeLabels = map[model.Mode]string{
	model.ModeDisabled: "Disabled",
	model.ModeEnabled:  "Enabled",
	model.ModeAuto:     "Auto",
	model.ModeTimer:    "Timer",
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		modeItems: make(map[model.Mode]*fyne.MenuItem),
	}

	manager.statusItem = fyne.NewMenuItem(statusText(model.ModeDisabled, model.StateInactive), nil)
	manager.statusItem.Disabled = true

	for _, mode := range menuModes {
		mode := mode
		item := fyne.NewMenuItem(modeLabels[mode], func() {
			if manager.callbacks.OnSelectMode != nil {
				manager.callbacks.OnSelectMode(mode)
			}
		})
		manager.modeItems[mode] = item
	}
	manager.modeItems[model.ModeDisabled].Checked = true

	app.SetSystemTrayMenu(manager.buildMenu())
	app.SetSystemTrayIcon(resources.TrayIcon(model.ModeDisabled, model.StateInactive))

	return manager
}

// SetState updates the icon, status line and mode checkmarks. Must be
// called on the fyne event loop.
func (manager *Manager) SetState(mode model.Mode, state model.ExecutionState) {
	if mode == manager.mode && state == manager.state {
		return
	}
	manager.mode = mode
	manager.state = state

	for itemMode, item := range manager.modeItems {
		item.Checked = itemMode == mode
	}
	manager.statusItem.Label = statusText(mode, state)

	manager.app.SetSystemTrayIcon(resources.TrayIcon(mode, state))
	manager.app.SetSystemTrayMenu(manager.buildMenu())
}

func (manager *Manager) buildMenu() *fyne.Menu {
	items := []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
	}
	for _, mode := range menuModes {
		items = append(items, manager.modeItems[mode])
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("About", func() {
			if manager.callbacks.OnAbout != nil {
				manager.callbacks.OnAbout()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	return fyne.NewMenu("CaffeineTake", items...)
}

// statusText maps (mode, state) to the tray status line.
func statusText(mode model.Mode, state model.ExecutionState) string {
	switch mode {
	case model.ModeDisabled:
		return "Caffeine is disabled"
	case model.ModeEnabled:
		return "Caffeine is enabled"
	case model.ModeAuto:
		return fmt.Sprintf("Auto mode (%s)", state)
	case model.ModeTimer:
		return fmt.Sprintf("Timer mode (%s)", state)
	default:
		return "Caffeine"
	}
}
