//go:build linux

package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverName     = "org.freedesktop.ScreenSaver"
	screenSaverPath     = "/org/freedesktop/ScreenSaver"
	activeChangedSignal = "org.freedesktop.ScreenSaver.ActiveChanged"
	activeChangedMember = "ActiveChanged"
	getActiveMethod     = "org.freedesktop.ScreenSaver.GetActive"
)

// sessionMonitor tracks lock state through the freedesktop ScreenSaver
// interface on the session bus.
type sessionMonitor struct {
	mu   sync.Mutex
	conn *dbus.Conn
}

func newSessionMonitor() SessionMonitor {
	return &sessionMonitor{}
}

func (monitor *sessionMonitor) connection() (*dbus.Conn, error) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if monitor.conn != nil {
		return monitor.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	monitor.conn = conn
	return conn, nil
}

func (monitor *sessionMonitor) IsLocked() (bool, error) {
	conn, err := monitor.connection()
	if err != nil {
		return false, err
	}
	obj := conn.Object(screenSaverName, dbus.ObjectPath(screenSaverPath))
	var active bool
	if err := obj.Call(getActiveMethod, 0).Store(&active); err != nil {
		return false, fmt.Errorf("screensaver GetActive: %w", err)
	}
	return active, nil
}

func (monitor *sessionMonitor) Start(ctx context.Context, callbacks SessionCallbacks) error {
	conn, err := monitor.connection()
	if err != nil {
		return err
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbus.ObjectPath(screenSaverPath)),
		dbus.WithMatchInterface(screenSaverName),
		dbus.WithMatchMember(activeChangedMember),
	); err != nil {
		return fmt.Errorf("subscribe %s: %w", activeChangedMember, err)
	}

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)

	go func() {
		for {
			select {
			case <-ctx.Done():
				conn.RemoveSignal(signals)
				return
			case sig := <-signals:
				if sig == nil {
					return
				}
				if sig.Name != activeChangedSignal || len(sig.Body) < 1 {
					continue
				}
				locked, ok := sig.Body[0].(bool)
				if !ok {
					continue
				}
				if locked {
					if callbacks.OnLocked != nil {
						callbacks.OnLocked()
					}
				} else if callbacks.OnUnlocked != nil {
					callbacks.OnUnlocked()
				}
			}
		}
	}()

	return nil
}
