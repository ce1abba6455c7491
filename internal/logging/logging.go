// Package logging configures the process-wide structured logger with
// file rotation.
package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Component constants for structured logging.
const (
	CompMain        = "main"
	CompCoordinator = "coordinator"
	CompPlatform    = "platform"
	CompTray        = "tray"
	CompStorage     = "storage"
)

// Config holds logging configuration.
type Config struct {
	// LogDir is the directory for log files; empty discards all output.
	LogDir string

	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string

	// MaxSizeMB is the max size in MB before rotation (default: 5).
	MaxSizeMB int

	// MaxBackups is rotated files to keep (default: 3).
	MaxBackups int
}

var (
	globalMu     sync.RWMutex
	globalLogger *slog.Logger
)

// Init initializes the global logging system.
func Init(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 5
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if cfg.LogDir == "" {
		globalLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, "caffeinetake.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	globalLogger = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
}

// Logger returns the global logger. Safe to call before Init.
func Logger() *slog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// ForComponent returns a sub-logger with the component field set.
func ForComponent(name string) *slog.Logger {
	return Logger().With(slog.String("component", name))
}
