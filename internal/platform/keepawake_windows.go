//go:build windows

package platform

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

type executionStateRequest struct {
	flags uintptr
	reply chan error
}

// keepAwake drives SetThreadExecutionState. The flags are per-thread,
// so every call is funneled onto one locked OS thread.
type keepAwake struct {
	requests chan executionStateRequest
}

func newKeepAwake() KeepAwake {
	awake := &keepAwake{requests: make(chan executionStateRequest)}
	go awake.run()
	return awake
}

func (awake *keepAwake) Assert(active bool, keepDisplayOn bool) error {
	flags := uintptr(esContinuous)
	if active {
		flags |= esSystemRequired
		if keepDisplayOn {
			flags |= esDisplayRequired
		}
	}

	reply := make(chan error, 1)
	awake.requests <- executionStateRequest{flags: flags, reply: reply}
	return <-reply
}

func (awake *keepAwake) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	setThreadExecutionState := kernel32.NewProc("SetThreadExecutionState")

	for request := range awake.requests {
		result, _, callErr := setThreadExecutionState.Call(request.flags)
		if result == 0 {
			request.reply <- fmt.Errorf("set thread execution state: %w", callErr)
			continue
		}
		request.reply <- nil
	}
}
