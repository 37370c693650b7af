// Package userconfig provides user-level configuration for stackctl.
// This configuration is stored in ~/.config/stackctl/config.yaml and contains
// user preferences such as the telemetry opt-out.
package userconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/stackctl/stackctl/pkg/paths"
)

// Settings represents global user settings
type Settings struct {
	// Telemetry enables or disables anonymous usage telemetry. Unset means enabled.
	Telemetry *bool `yaml:"telemetry,omitempty"`
	// GitBackend selects how repository metadata is read: "exec" runs the git
	// binary, "builtin" reads the repository in-process.
	GitBackend string `yaml:"git_backend,omitempty"`
}

// TelemetryEnabled reports whether the user left telemetry on.
func (s *Settings) TelemetryEnabled() bool {
	return s == nil || s.Telemetry == nil || *s.Telemetry
}

// CurrentVersion is the current version of the user config format
const CurrentVersion = "v1"

var gitBackends = []string{"", "exec", "builtin"}

// Config represents the user-level stackctl configuration
type Config struct {
	// Version is the config format version
	Version string `yaml:"version,omitempty"`
	// Settings contains global user settings
	Settings *Settings `yaml:"settings,omitempty"`
}

// Path returns the path to the config file
func Path() string {
	return filepath.Join(paths.GetConfigDir(), "config.yaml")
}

// Load loads the user configuration from the config file.
func Load() (*Config, error) {
	return loadFrom(Path())
}

// loadFrom reads and parses the config file, returning an empty config if file doesn't exist.
func loadFrom(configPath string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Settings != nil && !slices.Contains(gitBackends, c.Settings.GitBackend) {
		return fmt.Errorf("unknown git_backend %q: must be exec or builtin", c.Settings.GitBackend)
	}
	return nil
}

// Save saves the configuration to the config file
func (c *Config) Save() error {
	return c.saveTo(Path())
}

func (c *Config) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Ensure version is always set to current version when saving
	c.Version = CurrentVersion

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}

// GetSettings returns the global settings, or an empty Settings if not set
func (c *Config) GetSettings() *Settings {
	if c.Settings == nil {
		return &Settings{}
	}
	return c.Settings
}

// SetTelemetry records the user's telemetry choice.
func (c *Config) SetTelemetry(enabled bool) {
	if c.Settings == nil {
		c.Settings = &Settings{}
	}
	c.Settings.Telemetry = &enabled
}
