package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"zone25/internal/storage"
)

const configFileName = "config.yaml"

// Settings are the user-editable application options. The run shape itself
// is fixed and intentionally absent.
type Settings struct {
	LogLevel string
	LogFile  string

	StorageDriver string
	StoragePath   string

	Notifications bool
	TerminalBell  bool

	RefreshInterval time.Duration
}

// DefaultSettings returns default settings for Zone25.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:        "info",
		StorageDriver:   "yaml",
		Notifications:   true,
		TerminalBell:    true,
		RefreshInterval: time.Second,
	}
}

type yamlSettings struct {
	LogLevel               string `yaml:"log_level,omitempty"`
	LogFile                string `yaml:"log_file,omitempty"`
	StorageDriver          string `yaml:"storage_driver,omitempty"`
	StoragePath            string `yaml:"storage_path,omitempty"`
	Notifications          *bool  `yaml:"notifications,omitempty"`
	TerminalBell           *bool  `yaml:"terminal_bell,omitempty"`
	RefreshIntervalSeconds int    `yaml:"refresh_interval_seconds,omitempty"`
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	return storage.DefaultPath(configFileName)
}

// Load reads settings from path, or from DefaultPath when path is empty.
// If the file does not exist, default settings are returned.
func Load(path string) (Settings, error) {
	settings := DefaultSettings()
	configPath, err := resolvePath(path)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes settings to path, or to DefaultPath when path is empty.
func Save(path string, settings Settings) error {
	configPath, err := resolvePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	notifications := settings.Notifications
	bell := settings.TerminalBell
	fileData := yamlSettings{
		LogLevel:               settings.LogLevel,
		LogFile:                settings.LogFile,
		StorageDriver:          settings.StorageDriver,
		StoragePath:            settings.StoragePath,
		Notifications:          &notifications,
		TerminalBell:           &bell,
		RefreshIntervalSeconds: int(settings.RefreshInterval / time.Second),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// StorageConfig converts settings to the storage layer's options.
func (settings Settings) StorageConfig() storage.Config {
	return storage.Config{Driver: settings.StorageDriver, Path: settings.StoragePath}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return path, nil
	}
	return DefaultPath()
}

func applyYamlSettings(settings *Settings, fileData yamlSettings) {
	if level := strings.TrimSpace(fileData.LogLevel); level != "" {
		settings.LogLevel = level
	}
	settings.LogFile = strings.TrimSpace(fileData.LogFile)

	switch driver := strings.ToLower(strings.TrimSpace(fileData.StorageDriver)); driver {
	case "yaml", "sqlite", "memory", "preferences":
		settings.StorageDriver = driver
	}
	settings.StoragePath = strings.TrimSpace(fileData.StoragePath)

	if fileData.Notifications != nil {
		settings.Notifications = *fileData.Notifications
	}
	if fileData.TerminalBell != nil {
		settings.TerminalBell = *fileData.TerminalBell
	}
	if fileData.RefreshIntervalSeconds > 0 && fileData.RefreshIntervalSeconds <= 60 {
		settings.RefreshInterval = time.Duration(fileData.RefreshIntervalSeconds) * time.Second
	}
}
