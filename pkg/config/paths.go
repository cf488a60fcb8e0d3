package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application name.
	AppName = "tdidash"

	// AppDirName is the directory name for app data.
	AppDirName = ".tdidash"
)

// AppDir returns the application data directory (~/.tdidash).
func AppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, AppDirName), nil
}

// ConfigPath returns the path of the client configuration file.
func ConfigPath() (string, error) {
	appDir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "config.yaml"), nil
}

// DefaultLogPath returns where the client logs when no log_file is set.
func DefaultLogPath() (string, error) {
	appDir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "tdidash.log"), nil
}
