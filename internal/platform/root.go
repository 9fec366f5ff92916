package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName names the per-user data and config directories.
	AppName = "actionlog"

	// DefaultLogName is the log file name inside the data directory.
	DefaultLogName = "action_log.json"
)

// DataDir returns the per-user data directory for actionlog.
// $XDG_DATA_HOME wins when set. Otherwise darwin and windows use the user
// config dir and everything else uses ~/.local/share.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}

	switch runtime.GOOS {
	case "darwin", "windows":
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate data dir: %w", err)
		}
		return filepath.Join(base, AppName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate data dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// ConfigDir returns the directory searched for config.{toml,yaml,yml}.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultLogPath is where the log lives when nothing else is configured.
func DefaultLogPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultLogName), nil
}
