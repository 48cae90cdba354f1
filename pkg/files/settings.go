package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/shokunin/langotango/pkg/models"
)

const (
	AppDir       = "LangoTango"
	SettingsFile = "settings.yaml"
	TutorsFile   = "tutors.yaml"
	ConfigEnv    = "LANGOTANGO_CONFIG_DIR"
)

// ConfigDir returns the directory holding settings and custom tutors.
// LANGOTANGO_CONFIG_DIR overrides the platform config directory.
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(base, AppDir), nil
}

// SettingsPath returns the path of the settings file.
func SettingsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFile), nil
}

// TutorsPath returns the path of the custom tutors file.
func TutorsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TutorsFile), nil
}

// ReadSettings loads the settings file. A missing file yields the defaults;
// keys absent from the file keep their default values.
func ReadSettings() (*models.Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	return ReadSettingsFrom(path)
}

// ReadSettingsFrom loads settings from path.
func ReadSettingsFrom(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// WriteSettings saves the settings file.
func WriteSettings(settings *models.Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return WriteSettingsTo(path, settings)
}

// WriteSettingsTo saves settings to path.
func WriteSettingsTo(path string, settings *models.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := WriteAtomic(path, data, SaveOptions{Logger: zerolog.Nop()}); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
