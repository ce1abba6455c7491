//go:build darwin

package platform

import "context"

type sessionMonitor struct{}

func newSessionMonitor() SessionMonitor {
	return sessionMonitor{}
}

func (sessionMonitor) IsLocked() (bool, error) {
	return false, ErrSessionUnsupported
}

func (sessionMonitor) Start(ctx context.Context, callbacks SessionCallbacks) error {
	return ErrSessionUnsupported
}
