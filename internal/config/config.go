package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// SecretFilePermissions is used for files that may hold credentials
	SecretFilePermissions = 0600
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// LocalConfigFile is looked up in the working directory before the global one
	LocalConfigFile = ".arangotui.yaml"
)

var (
	// ConfigDir is the global configuration directory (~/.arangotui)
	ConfigDir string

	// ConfigFile is the YAML file holding connection profiles and preferences
	ConfigFile string

	// DatabasePath is the SQLite database file for fetch history
	DatabasePath string

	// LogFile receives the structured log; the terminal belongs to the TUI
	LogFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string
)

// Initialize sets up the configuration directory and files
// It creates ~/.arangotui/ and a default config.yaml if they don't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".arangotui"))
}

// InitializeAt is Initialize rooted at an explicit directory
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "arangotui.db")
	LogFile = filepath.Join(ConfigDir, "arangotui.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default config file if it doesn't exist
	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		if err := Save(ConfigFile, Default()); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	return nil
}

// LocalConfigExists checks if there's a .arangotui.yaml in the working directory
func LocalConfigExists() bool {
	_, err := os.Stat(LocalConfigFile)
	return err == nil
}

// GetConfigFilePath returns the config file path (local or global)
func GetConfigFilePath() string {
	if LocalConfigExists() {
		return LocalConfigFile
	}
	return ConfigFile
}
