package configs

import (
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
	UserKeysPath    string
}

var UserDevforgeSettings *UserSettings

func init() {
	// Missing directories are not fatal here; commands that need them
	// report the failure when they touch the filesystem.
	settings, _ := DefaultUserSettings()
	UserDevforgeSettings = settings
}

// DefaultUserSettings derives the user-level directories from the OS.
func DefaultUserSettings() (*UserSettings, error) {
	settings := &UserSettings{}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return settings, err
	}
	settings.UserConfigsPath = filepath.Join(configDir, "devforge")

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return settings, err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	settings.UserKeysPath = filepath.Join(dataDir, "devforge", "keys")

	return settings, nil
}
