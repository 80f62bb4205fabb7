// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// DatabasePath resolves the configured sqlite path, falling back to the
// default location under the user's data directory.
func DatabasePath() string {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/phishstop/phishstop.db"
	}

	return ExpandPath(dbPath)
}

// APIBaseURL resolves the analysis service base URL used by the remote
// analyzer and the report client.
func APIBaseURL() string {
	base := viper.GetString("api.base_url")
	if base == "" {
		base = "http://localhost:5000"
	}

	return base
}
