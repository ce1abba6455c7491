package platform

import (
	"context"
	"errors"
)

// ErrSessionUnsupported indicates session lock detection is not
// available on this system.
var ErrSessionUnsupported = errors.New("session lock detection unsupported")

// SessionCallbacks receive session lock transitions. Each transition is
// delivered at most once, in order.
type SessionCallbacks struct {
	OnLocked   func()
	OnUnlocked func()
}

// SessionMonitor observes the OS session lock status.
type SessionMonitor interface {
	// IsLocked queries the current lock state.
	IsLocked() (bool, error)
	// Start begins delivering lock transitions until ctx is cancelled.
	Start(ctx context.Context, callbacks SessionCallbacks) error
}

// NewSessionMonitor returns a platform-specific session monitor.
func NewSessionMonitor() SessionMonitor {
	return newSessionMonitor()
}
