//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	desktopSwitchDesktop = 0x0100

	wmDestroy          = 0x0002
	wmClose            = 0x0010
	wmWtsSessionChange = 0x02b1

	wtsSessionLock       = 0x7
	wtsSessionUnlock     = 0x8
	notifyForThisSession = 0
)

// sessionMonitor receives WTS session change notifications through a
// message-only window. Delivery is event driven, so a lock immediately
// followed by an unlock still produces both callbacks in order.
type sessionMonitor struct{}

func newSessionMonitor() SessionMonitor {
	return sessionMonitor{}
}

func (sessionMonitor) IsLocked() (bool, error) {
	return queryInputDesktopLocked(), nil
}

func (sessionMonitor) Start(ctx context.Context, callbacks SessionCallbacks) error {
	ready := make(chan error, 1)
	go runSessionWindow(ctx, callbacks, ready)
	return <-ready
}

type wndClassEx struct {
	size       uint32
	style      uint32
	wndProc    uintptr
	clsExtra   int32
	wndExtra   int32
	instance   uintptr
	icon       uintptr
	cursor     uintptr
	background uintptr
	menuName   *uint16
	className  *uint16
	iconSmall  uintptr
}

type windowMessage struct {
	hwnd    uintptr
	message uint32
	wparam  uintptr
	lparam  uintptr
	time    uint32
	point   [2]int32
}

// runSessionWindow creates the message-only window, registers for WTS
// session notifications and pumps its message queue until ctx ends.
// The window handle and its queue are bound to this thread.
func runSessionWindow(ctx context.Context, callbacks SessionCallbacks, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	user32 := windows.NewLazySystemDLL("user32.dll")
	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	wtsapi32 := windows.NewLazySystemDLL("wtsapi32.dll")

	registerClass := user32.NewProc("RegisterClassExW")
	createWindow := user32.NewProc("CreateWindowExW")
	defWindowProc := user32.NewProc("DefWindowProcW")
	getMessage := user32.NewProc("GetMessageW")
	translateMessage := user32.NewProc("TranslateMessage")
	dispatchMessage := user32.NewProc("DispatchMessageW")
	postMessage := user32.NewProc("PostMessageW")
	postQuitMessage := user32.NewProc("PostQuitMessage")
	getModuleHandle := kernel32.NewProc("GetModuleHandleW")
	registerNotification := wtsapi32.NewProc("WTSRegisterSessionNotification")
	unregisterNotification := wtsapi32.NewProc("WTSUnRegisterSessionNotification")

	wndProc := windows.NewCallback(func(hwnd, message, wparam, lparam uintptr) uintptr {
		switch message {
		case wmWtsSessionChange:
			if locked, ok := sessionChange(wparam); ok {
				if locked {
					if callbacks.OnLocked != nil {
						callbacks.OnLocked()
					}
				} else if callbacks.OnUnlocked != nil {
					callbacks.OnUnlocked()
				}
			}
			return 0
		case wmDestroy:
			_, _, _ = unregisterNotification.Call(hwnd)
			_, _, _ = postQuitMessage.Call(0)
			return 0
		}
		result, _, _ := defWindowProc.Call(hwnd, message, wparam, lparam)
		return result
	})

	className, err := windows.UTF16PtrFromString("CaffeineTakeSessionWindow")
	if err != nil {
		ready <- fmt.Errorf("session window class name: %w", err)
		return
	}
	moduleHandle, _, _ := getModuleHandle.Call(0)

	class := wndClassEx{
		size:      uint32(unsafe.Sizeof(wndClassEx{})),
		wndProc:   wndProc,
		instance:  moduleHandle,
		className: className,
	}
	if atom, _, callErr := registerClass.Call(uintptr(unsafe.Pointer(&class))); atom == 0 {
		ready <- fmt.Errorf("register session window class: %w", callErr)
		return
	}

	// HWND_MESSAGE parents the window outside any visible desktop.
	hwndMessage := ^uintptr(2)
	hwnd, _, callErr := createWindow.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		0,
		0,
		0, 0, 0, 0,
		hwndMessage,
		0,
		moduleHandle,
		0,
	)
	if hwnd == 0 {
		ready <- fmt.Errorf("create session window: %w", callErr)
		return
	}

	if ok, _, callErr := registerNotification.Call(hwnd, notifyForThisSession); ok == 0 {
		ready <- fmt.Errorf("register session notification: %w", callErr)
		return
	}
	ready <- nil

	go func() {
		<-ctx.Done()
		_, _, _ = postMessage.Call(hwnd, wmClose, 0, 0)
	}()

	var message windowMessage
	for {
		result, _, _ := getMessage.Call(uintptr(unsafe.Pointer(&message)), 0, 0, 0)
		if int32(result) <= 0 {
			return
		}
		_, _, _ = translateMessage.Call(uintptr(unsafe.Pointer(&message)))
		_, _, _ = dispatchMessage.Call(uintptr(unsafe.Pointer(&message)))
	}
}

// sessionChange maps a WM_WTSSESSION_CHANGE code to a lock transition.
// Codes other than lock and unlock (connects, logons) are ignored.
func sessionChange(code uintptr) (locked bool, ok bool) {
	switch code {
	case wtsSessionLock:
		return true, true
	case wtsSessionUnlock:
		return false, true
	}
	return false, false
}

// queryInputDesktopLocked answers the startup lock query. While the
// secure (Winlogon) desktop is up OpenInputDesktop fails, which is how
// a locked session presents to a non-interactive process.
func queryInputDesktopLocked() bool {
	user32 := windows.NewLazySystemDLL("user32.dll")
	openInputDesktop := user32.NewProc("OpenInputDesktop")
	closeDesktop := user32.NewProc("CloseDesktop")

	handle, _, _ := openInputDesktop.Call(0, 0, desktopSwitchDesktop)
	if handle == 0 {
		return true
	}
	_, _, _ = closeDesktop.Call(handle)
	return false
}
