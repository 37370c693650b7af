package paths

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns the user's config directory for stackctl.
// STACKCTL_CONFIG_DIR overrides it.
//
// If the home directory cannot be determined, it falls back to a directory
// under the system temporary directory.
func GetConfigDir() string {
	if dir := os.Getenv("STACKCTL_CONFIG_DIR"); dir != "" {
		return filepath.Clean(dir)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".stackctl-config"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".config", "stackctl"))
}

// GetDataDir returns the user's data directory for stackctl (logs).
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".stackctl"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".stackctl"))
}
