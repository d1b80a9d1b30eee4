package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings represents the per-user preferences
type Settings struct {
	DefaultConfig string `toml:"default_config"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
}

// DefaultConfigName is looked up in the current directory when nothing else is set.
const DefaultConfigName = "config.yaml"

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetSettingsFilePath returns the path to the settings file
func GetSettingsFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardgen", "settings.toml")
}

// LoadSettings loads the settings file, creating it with defaults if missing
func LoadSettings() (*Settings, error) {
	settingsPath := GetSettingsFilePath()

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return createDefaultSettings()
	}

	var settings Settings
	if _, err := toml.DecodeFile(settingsPath, &settings); err != nil {
		return nil, fmt.Errorf("error decoding settings file: %w", err)
	}

	return &settings, nil
}

// createDefaultSettings writes a default settings file
func createDefaultSettings() (*Settings, error) {
	settings := &Settings{
		LogLevel:  "info",
		LogFormat: "text",
	}

	if err := SaveSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings encodes settings to the settings file
func SaveSettings(settings *Settings) error {
	settingsPath := GetSettingsFilePath()

	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		return fmt.Errorf("error creating settings directory: %w", err)
	}

	file, err := os.Create(settingsPath)
	if err != nil {
		return fmt.Errorf("error creating settings file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(settings); err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	return nil
}

// SetDefaultConfig records path as the configuration used when --config is absent
func SetDefaultConfig(path string) error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("error resolving %s: %w", path, err)
	}
	settings.DefaultConfig = abs

	return SaveSettings(settings)
}

// ResolveConfigPath picks the pipeline configuration: the flag value first,
// then the default from the settings file, then config.yaml in the working directory.
func ResolveConfigPath(flagValue string, settings *Settings) (string, error) {
	candidates := []string{flagValue}
	if settings != nil {
		candidates = append(candidates, settings.DefaultConfig)
	}
	candidates = append(candidates, DefaultConfigName)

	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if p == flagValue {
			return "", fmt.Errorf("config not found: %s", p)
		}
	}

	return "", fmt.Errorf("no config given and %s not found in the current directory", DefaultConfigName)
}
