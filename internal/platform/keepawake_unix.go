//go:build linux || darwin

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// keepAwake holds the assertion by keeping a blocking inhibitor child
// process alive (systemd-inhibit on Linux, caffeinate on macOS).
type keepAwake struct {
	mu            sync.Mutex
	cmd           *exec.Cmd
	cancel        context.CancelFunc
	active        bool
	keepDisplayOn bool
}

func newKeepAwake() KeepAwake {
	return &keepAwake{}
}

func (awake *keepAwake) Assert(active bool, keepDisplayOn bool) error {
	awake.mu.Lock()
	defer awake.mu.Unlock()

	if active == awake.active && keepDisplayOn == awake.keepDisplayOn {
		return nil
	}

	awake.releaseLocked()
	if !active {
		awake.active = false
		awake.keepDisplayOn = false
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := inhibitCommand(ctx, keepDisplayOn)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start inhibitor: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()

	awake.cmd = cmd
	awake.cancel = cancel
	awake.active = true
	awake.keepDisplayOn = keepDisplayOn
	return nil
}

func (awake *keepAwake) releaseLocked() {
	if awake.cancel != nil {
		awake.cancel()
		awake.cancel = nil
	}
	if awake.cmd != nil && awake.cmd.Process != nil {
		_ = awake.cmd.Process.Kill()
	}
	awake.cmd = nil
}
