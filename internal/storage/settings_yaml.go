package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/serverfailure71/CaffeineTake/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlModeOptions struct {
	KeepDisplayOn       bool `yaml:"keep_display_on"`
	DisableOnLockScreen bool `yaml:"disable_on_lock_screen"`
}

type yamlAutoOptions struct {
	yamlModeOptions      `yaml:",inline"`
	ScanIntervalSeconds  int      `yaml:"scan_interval_seconds"`
	ProcessNames         []string `yaml:"process_names"`
	IdleThresholdSeconds int      `yaml:"idle_threshold_seconds"`
}

type yamlTimerOptions struct {
	yamlModeOptions `yaml:",inline"`
	DurationMinutes int `yaml:"duration_minutes"`
}

type yamlSettings struct {
	Enabled      yamlModeOptions  `yaml:"enabled"`
	Auto         yamlAutoOptions  `yaml:"auto"`
	Timer        yamlTimerOptions `yaml:"timer"`
	RunAtStartup bool             `yaml:"run_at_startup"`
	LogLevel     string           `yaml:"log_level"`
}

// SettingsPath resolves the YAML settings file location.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist or cannot be parsed, default settings are
// returned; a parse failure is reported alongside the defaults so the
// caller can log it without failing startup.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := SettingsPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Enabled: yamlModeOptions{
			KeepDisplayOn:       settings.Enabled.KeepDisplayOn,
			DisableOnLockScreen: settings.Enabled.DisableOnLockScreen,
		},
		Auto: yamlAutoOptions{
			yamlModeOptions: yamlModeOptions{
				KeepDisplayOn:       settings.Auto.KeepDisplayOn,
				DisableOnLockScreen: settings.Auto.DisableOnLockScreen,
			},
			ScanIntervalSeconds:  int(settings.Auto.ScanInterval / time.Second),
			ProcessNames:         settings.Auto.ProcessNames,
			IdleThresholdSeconds: int(settings.Auto.IdleThreshold / time.Second),
		},
		Timer: yamlTimerOptions{
			yamlModeOptions: yamlModeOptions{
				KeepDisplayOn:       settings.Timer.KeepDisplayOn,
				DisableOnLockScreen: settings.Timer.DisableOnLockScreen,
			},
			DurationMinutes: int(settings.Timer.Duration / time.Minute),
		},
		RunAtStartup: settings.RunAtStartup,
		LogLevel:     settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	settings.Enabled.KeepDisplayOn = fileData.Enabled.KeepDisplayOn
	settings.Enabled.DisableOnLockScreen = fileData.Enabled.DisableOnLockScreen

	settings.Auto.KeepDisplayOn = fileData.Auto.KeepDisplayOn
	settings.Auto.DisableOnLockScreen = fileData.Auto.DisableOnLockScreen
	if fileData.Auto.ScanIntervalSeconds > 0 {
		settings.Auto.ScanInterval = time.Duration(fileData.Auto.ScanIntervalSeconds) * time.Second
	}
	settings.Auto.ProcessNames = fileData.Auto.ProcessNames
	if fileData.Auto.IdleThresholdSeconds > 0 {
		settings.Auto.IdleThreshold = time.Duration(fileData.Auto.IdleThresholdSeconds) * time.Second
	}

	settings.Timer.KeepDisplayOn = fileData.Timer.KeepDisplayOn
	settings.Timer.DisableOnLockScreen = fileData.Timer.DisableOnLockScreen
	if fileData.Timer.DurationMinutes > 0 {
		settings.Timer.Duration = time.Duration(fileData.Timer.DurationMinutes) * time.Minute
	}

	settings.RunAtStartup = fileData.RunAtStartup
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
