package model

import "time"

// Mode selects how the keep-awake assertion is driven.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeEnabled
	ModeAuto
	ModeTimer
)

// Next returns the mode following this one in the toggle cycle.
func (mode Mode) Next() Mode {
	switch mode {
	case ModeDisabled:
		return ModeEnabled
	case ModeEnabled:
		return ModeAuto
	case ModeAuto:
		return ModeTimer
	default:
		return ModeDisabled
	}
}

// String returns the mode name.
func (mode Mode) String() string {
	switch mode {
	case ModeDisabled:
		return "disabled"
	case ModeEnabled:
		return "enabled"
	case ModeAuto:
		return "auto"
	case ModeTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to a Mode, defaulting to ModeDisabled.
func ParseMode(value string) Mode {
	switch value {
	case "enabled":
		return ModeEnabled
	case "auto":
		return ModeAuto
	case "timer":
		return ModeTimer
	default:
		return ModeDisabled
	}
}

// ExecutionState reports whether the keep-awake assertion is held.
type ExecutionState int

const (
	StateInactive ExecutionState = iota
	StateActive
)

// String returns the state name.
func (state ExecutionState) String() string {
	if state == StateActive {
		return "active"
	}
	return "inactive"
}

// SessionState mirrors the OS session lock status.
type SessionState int

const (
	SessionUnlocked SessionState = iota
	SessionLocked
)

// String returns the session state name.
func (state SessionState) String() string {
	if state == SessionLocked {
		return "locked"
	}
	return "unlocked"
}

// ModeConfig holds the options shared by every non-disabled mode.
type ModeConfig struct {
	KeepDisplayOn       bool
	DisableOnLockScreen bool
}

// AutoConfig extends ModeConfig with activity-detection parameters.
type AutoConfig struct {
	ModeConfig
	ScanInterval  time.Duration
	ProcessNames  []string
	IdleThreshold time.Duration
}

// TimerConfig extends ModeConfig with the countdown duration.
type TimerConfig struct {
	ModeConfig
	Duration time.Duration
}

// Config bundles the per-mode configuration consumed by the coordinator.
type Config struct {
	Enabled ModeConfig
	Auto    AutoConfig
	Timer   TimerConfig
}

// Sanitized returns a copy with zero or nonsensical values replaced by
// safe defaults, so a malformed settings file never fails mode activation.
func (config Config) Sanitized() Config {
	if config.Auto.ScanInterval <= 0 {
		config.Auto.ScanInterval = 2 * time.Second
	}
	if config.Auto.IdleThreshold < 0 {
		config.Auto.IdleThreshold = 0
	}
	if config.Timer.Duration < 0 {
		config.Timer.Duration = 0
	}
	return config
}

// ModeConfigFor returns the ModeConfig for the given mode. Disabled mode
// has no options and resolves to the zero value.
func (config Config) ModeConfigFor(mode Mode) ModeConfig {
	switch mode {
	case ModeEnabled:
		return config.Enabled
	case ModeAuto:
		return config.Auto.ModeConfig
	case ModeTimer:
		return config.Timer.ModeConfig
	default:
		return ModeConfig{}
	}
}
