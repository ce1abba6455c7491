package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)

	enabledDisplay *widget.Check
	enabledOnLock  *widget.Check

	autoDisplay   *widget.Check
	autoOnLock    *widget.Check
	autoInterval  *widget.Entry
	autoProcesses *widget.Entry
	autoIdle      *widget.Entry

	timerDisplay  *widget.Check
	timerOnLock   *widget.Check
	timerDuration *widget.Entry

	runAtStartup *widget.Check
	logLevel     *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("CaffeineTake Settings")

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,

		enabledDisplay: widget.NewCheck("Keep display on", nil),
		enabledOnLock:  widget.NewCheck("Disable display-on while locked", nil),

		autoDisplay:   widget.NewCheck("Keep display on", nil),
		autoOnLock:    widget.NewCheck("Disable display-on while locked", nil),
		autoInterval:  widget.NewEntry(),
		autoProcesses: widget.NewEntry(),
		autoIdle:      widget.NewEntry(),

		timerDisplay:  widget.NewCheck("Keep display on", nil),
		timerOnLock:   widget.NewCheck("Disable display-on while locked", nil),
		timerDuration: widget.NewEntry(),

		runAtStartup: widget.NewCheck("Run at startup", nil),
		logLevel:     widget.NewSelect([]string{"debug", "info", "warn", "error"}, nil),
	}

	prefs.autoProcesses.SetPlaceHolder("process names, comma separated")
	prefs.applySettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Enabled mode", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.enabledDisplay,
		prefs.enabledOnLock,

		widget.NewLabelWithStyle("Auto mode", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.autoDisplay,
		prefs.autoOnLock,
		container.NewHBox(widget.NewLabel("Scan every"), prefs.autoInterval, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Watch processes"), prefs.autoProcesses),
		container.NewHBox(widget.NewLabel("Active if input within"), prefs.autoIdle, widget.NewLabel("sec (0 = off)")),

		widget.NewLabelWithStyle("Timer mode", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.timerDisplay,
		prefs.timerOnLock,
		container.NewHBox(widget.NewLabel("Duration"), prefs.timerDuration, widget.NewLabel("min")),

		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.runAtStartup,
		container.NewHBox(widget.NewLabel("Log level"), prefs.logLevel),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(440, 560))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.applySettings(settings)
}

func (prefs *Window) applySettings(settings Settings) {
	prefs.enabledDisplay.SetChecked(settings.Enabled.KeepDisplayOn)
	prefs.enabledOnLock.SetChecked(settings.Enabled.DisableOnLockScreen)

	prefs.autoDisplay.SetChecked(settings.Auto.KeepDisplayOn)
	prefs.autoOnLock.SetChecked(settings.Auto.DisableOnLockScreen)
	prefs.autoInterval.SetText(fmt.Sprintf("%d", int(settings.Auto.ScanInterval.Seconds())))
	prefs.autoProcesses.SetText(strings.Join(settings.Auto.ProcessNames, ", "))
	prefs.autoIdle.SetText(fmt.Sprintf("%d", int(settings.Auto.IdleThreshold.Seconds())))

	prefs.timerDisplay.SetChecked(settings.Timer.KeepDisplayOn)
	prefs.timerOnLock.SetChecked(settings.Timer.DisableOnLockScreen)
	prefs.timerDuration.SetText(fmt.Sprintf("%d", int(settings.Timer.Duration.Minutes())))

	prefs.runAtStartup.SetChecked(settings.RunAtStartup)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.Enabled.KeepDisplayOn = prefs.enabledDisplay.Checked
	settings.Enabled.DisableOnLockScreen = prefs.enabledOnLock.Checked

	settings.Auto.KeepDisplayOn = prefs.autoDisplay.Checked
	settings.Auto.DisableOnLockScreen = prefs.autoOnLock.Checked
	if seconds, ok := parsePositiveInt(prefs.autoInterval.Text); ok {
		settings.Auto.ScanInterval = time.Duration(seconds) * time.Second
	}
	settings.Auto.ProcessNames = parseProcessNames(prefs.autoProcesses.Text)
	if seconds, err := strconv.Atoi(strings.TrimSpace(prefs.autoIdle.Text)); err == nil && seconds >= 0 {
		settings.Auto.IdleThreshold = time.Duration(seconds) * time.Second
	}

	settings.Timer.KeepDisplayOn = prefs.timerDisplay.Checked
	settings.Timer.DisableOnLockScreen = prefs.timerOnLock.Checked
	if minutes, ok := parsePositiveInt(prefs.timerDuration.Text); ok {
		settings.Timer.Duration = time.Duration(minutes) * time.Minute
	}

	settings.RunAtStartup = prefs.runAtStartup.Checked
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseProcessNames(value string) []string {
	var names []string
	for _, part := range strings.Split(value, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
