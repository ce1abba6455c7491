package platform

import (
	"fmt"
	"os"
)

// Service manages the OS login-item registration for the app.
type Service interface {
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns the autostart implementation for this OS.
func NewService() Service {
	return &platformService{}
}

// configDirWithFallback resolves the user config directory, falling back
// to the conventional per-OS location under the home directory when the
// environment does not expose one.
func configDirWithFallback() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("resolve config dir: %w", err)
		}
		return "", fmt.Errorf("resolve config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}
