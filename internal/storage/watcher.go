package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/serverfailure71/CaffeineTake/internal/logging"
)

const reloadDebounce = 500 * time.Millisecond

// SettingsWatcher watches the settings file for external edits and
// delivers a reload signal after a short debounce. The parent directory
// is watched because editors typically replace the file on save.
type SettingsWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	reloadCh chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc

	mu       sync.Mutex
	debounce *time.Timer
	closed   bool
}

// NewSettingsWatcher creates a watcher for the given app's settings file.
func NewSettingsWatcher(appName string) (*SettingsWatcher, error) {
	path, err := SettingsPath(appName)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &SettingsWatcher{
		path:     path,
		watcher:  watcher,
		reloadCh: make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// ReloadChannel delivers one signal per settled burst of file changes.
func (w *SettingsWatcher) ReloadChannel() <-chan struct{} {
	return w.reloadCh
}

// Start begins watching. Safe to call once.
func (w *SettingsWatcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch settings dir: %w", err)
	}

	go w.loop()
	return nil
}

// Close stops the watcher.
func (w *SettingsWatcher) Close() {
	w.cancel()
	_ = w.watcher.Close()
}

func (w *SettingsWatcher) loop() {
	defer w.closeReloadChannel()
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.ForComponent(logging.CompStorage).Warn("settings watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *SettingsWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDebounce, w.fireReload)
}

func (w *SettingsWatcher) fireReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.reloadCh <- struct{}{}:
	default:
	}
}

// closeReloadChannel runs when the event loop exits so consumers
// ranging over ReloadChannel terminate. The closed flag keeps a
// late debounce timer from sending on the closed channel.
func (w *SettingsWatcher) closeReloadChannel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	close(w.reloadCh)
}
