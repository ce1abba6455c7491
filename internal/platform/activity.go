package platform

import (
	"errors"
	"strings"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
)

// ActivityMonitor decides whether the auto-mode activity condition
// holds: a watched process is running, or the user has produced input
// within the configured idle threshold.
type ActivityMonitor struct {
	idle IdleProvider
}

// NewActivityMonitor builds an activity monitor with the platform idle provider.
func NewActivityMonitor() *ActivityMonitor {
	return &ActivityMonitor{idle: NewIdleProvider()}
}

// Active reports the current activity verdict for the given configuration.
func (monitor *ActivityMonitor) Active(config model.AutoConfig) (bool, error) {
	var firstErr error

	if len(config.ProcessNames) > 0 {
		running, err := anyProcessRunning(config.ProcessNames)
		if err != nil {
			firstErr = err
		} else if running {
			return true, nil
		}
	}

	if config.IdleThreshold > 0 && monitor.idle != nil {
		idleFor, err := monitor.idle.IdleDuration()
		switch {
		case err == nil:
			return idleFor < config.IdleThreshold, nil
		case errors.Is(err, ErrIdleUnsupported):
			// Fall through to the process verdict.
		case firstErr == nil:
			firstErr = err
		}
	}

	return false, firstErr
}

// matchesProcessName compares a running process name against a watched
// one, ignoring case and a trailing ".exe".
func matchesProcessName(candidate, watched string) bool {
	candidate = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(candidate)), ".exe")
	watched = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(watched)), ".exe")
	return candidate != "" && candidate == watched
}

func anyNameMatches(candidate string, watched []string) bool {
	for _, name := range watched {
		if matchesProcessName(candidate, name) {
			return true
		}
	}
	return false
}
