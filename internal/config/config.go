package config

import (
	"os"
	"path/filepath"
)

const (
	AppName    = "quire"
	DbName     = "quire.db"
	ConfigName = "config.yaml"
)

// DataDir returns the path to the quire data directory (~/.quire/)
// Creates the directory if it doesn't exist
// Can be overridden with QUIRE_DATA_DIR environment variable (primarily for testing)
func DataDir() (string, error) {
	if dataDir := os.Getenv("QUIRE_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// NotesDir returns the path to the notes directory (~/.quire/notes/)
// Creates the directory if it doesn't exist
func NotesDir() (string, error) {
	return subDir("notes")
}

// LogDir returns the path to the log directory (~/.quire/logs/)
// Creates the directory if it doesn't exist
func LogDir() (string, error) {
	return subDir("logs")
}

// DatabasePath returns the path to the SQLite database (~/.quire/quire.db)
func DatabasePath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, DbName), nil
}

// ConfigPath returns the path of the settings file (~/.quire/config.yaml).
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, ConfigName), nil
}

func subDir(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(dataDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
