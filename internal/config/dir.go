// Package config provides the global configuration for gitcmd.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the gitcmd configuration directory.
//
// Resolution:
//   - $GITCMD_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/gitcmd if set (respects XDG on any platform)
//   - %AppData%/gitcmd on Windows
//   - ~/.config/gitcmd on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GITCMD_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitcmd")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gitcmd")
		}
	}

	// macOS and Linux: ~/.config/gitcmd
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gitcmd")
}
