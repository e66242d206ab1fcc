package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"rudd/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	// UnitSeconds is the length of one table step; the face names the unit.
	UnitSeconds       int     `yaml:"unit_seconds"`
	CancelRetryMillis *int    `yaml:"cancel_retry_ms"`
	MaxPendingTimers  int     `yaml:"max_pending_timers"`
	PulseMillis       int     `yaml:"pulse_ms"`
	ToneHz            float64 `yaml:"tone_hz"`
	LogLevel          string  `yaml:"log_level"`
	LogFile           string  `yaml:"log_file,omitempty"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads settings from path.
// If the file does not exist, defaults are returned together with found=false
// and the caller may write them with SaveSettings.
func LoadSettings(path string) (settings model.Settings, found bool, err error) {
	settings = model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, false, nil
		}
		return settings, false, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, true, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, true, nil
}

// SaveSettings writes settings to path, creating its directory.
func SaveSettings(path string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	retryMillis := int(settings.CancelRetryDelay / time.Millisecond)
	fileData := yamlSettings{
		UnitSeconds:       int(settings.Unit / time.Second),
		CancelRetryMillis: &retryMillis,
		MaxPendingTimers:  settings.MaxPendingTimers,
		PulseMillis:       int(settings.PulseDuration / time.Millisecond),
		ToneHz:            settings.ToneHz,
		LogLevel:          settings.LogLevel,
		LogFile:           settings.LogFile,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.UnitSeconds > 0 {
		settings.Unit = time.Duration(fileData.UnitSeconds) * time.Second
	}
	// Zero is meaningful: it turns the second cancel off.
	if fileData.CancelRetryMillis != nil && *fileData.CancelRetryMillis >= 0 {
		settings.CancelRetryDelay = time.Duration(*fileData.CancelRetryMillis) * time.Millisecond
	}
	if fileData.MaxPendingTimers > 0 {
		settings.MaxPendingTimers = fileData.MaxPendingTimers
	}
	if fileData.PulseMillis > 0 {
		settings.PulseDuration = time.Duration(fileData.PulseMillis) * time.Millisecond
	}
	if fileData.ToneHz > 0 {
		settings.ToneHz = fileData.ToneHz
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
	settings.LogFile = fileData.LogFile
}
