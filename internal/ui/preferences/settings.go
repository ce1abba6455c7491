package preferences

import (
	"time"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
)

// ModeOptions defines the options shared by every non-disabled mode.
type ModeOptions struct {
	KeepDisplayOn       bool
	DisableOnLockScreen bool
}

// AutoOptions configures auto-mode activity detection.
type AutoOptions struct {
	ModeOptions
	ScanInterval  time.Duration
	ProcessNames  []string
	IdleThreshold time.Duration
}

// TimerOptions configures timer mode.
type TimerOptions struct {
	ModeOptions
	Duration time.Duration
}

// Settings defines editable user preferences.
type Settings struct {
	Enabled ModeOptions
	Auto    AutoOptions
	Timer   TimerOptions

	RunAtStartup bool
	LogLevel     string
}

// DefaultSettings returns default settings for CaffeineTake.
func DefaultSettings() Settings {
	return Settings{
		Enabled: ModeOptions{
			KeepDisplayOn:       true,
			DisableOnLockScreen: true,
		},
		Auto: AutoOptions{
			ModeOptions: ModeOptions{
				KeepDisplayOn:       true,
				DisableOnLockScreen: true,
			},
			ScanInterval:  2 * time.Second,
			IdleThreshold: 0,
		},
		Timer: TimerOptions{
			ModeOptions: ModeOptions{
				KeepDisplayOn:       true,
				DisableOnLockScreen: true,
			},
			Duration: 30 * time.Minute,
		},
		LogLevel: "info",
	}
}

// CoordinatorConfig converts settings to the coordinator configuration.
func (settings Settings) CoordinatorConfig() model.Config {
	return model.Config{
		Enabled: model.ModeConfig{
			KeepDisplayOn:       settings.Enabled.KeepDisplayOn,
			DisableOnLockScreen: settings.Enabled.DisableOnLockScreen,
		},
		Auto: model.AutoConfig{
			ModeConfig: model.ModeConfig{
				KeepDisplayOn:       settings.Auto.KeepDisplayOn,
				DisableOnLockScreen: settings.Auto.DisableOnLockScreen,
			},
			ScanInterval:  settings.Auto.ScanInterval,
			ProcessNames:  settings.Auto.ProcessNames,
			IdleThreshold: settings.Auto.IdleThreshold,
		},
		Timer: model.TimerConfig{
			ModeConfig: model.ModeConfig{
				KeepDisplayOn:       settings.Timer.KeepDisplayOn,
				DisableOnLockScreen: settings.Timer.DisableOnLockScreen,
			},
			Duration: settings.Timer.Duration,
		},
	}.Sanitized()
}
