// Package paths resolves default filesystem locations for tasknest
// data and configuration.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDir returns the default tasknest data directory.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "tasknest"), nil
}

// DefaultDataFile returns the default path of the todo data file.
func DefaultDataFile() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todos.json"), nil
}

// DefaultBackupDir returns the default backup snapshot directory.
func DefaultBackupDir() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "backups"), nil
}

// GlobalConfigPath returns the path of the global config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "tasknest", "config.toml"), nil
}
