package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - SIDEKICK_CONFIG_PATH: config file location (default: ~/.config/sidekick.toml)
//   - SIDEKICK_HOME: base directory for sidekick data (default: ~/.local/share/sidekick)
//   - SIDEKICK_USER: user whose document is opened when --user is not given
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"user":        os.Getenv("SIDEKICK_USER"),
	}, nil
}

func getConfigPath() (string, error) {
	if path := os.Getenv("SIDEKICK_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "sidekick.toml"), nil
}

// getBaseDir returns the base directory for sidekick data, checking SIDEKICK_HOME
// first, then falling back to the XDG default ~/.local/share/sidekick.
func getBaseDir() (string, error) {
	if path := os.Getenv("SIDEKICK_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "sidekick"), nil
}
