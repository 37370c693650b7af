package telemetry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stackctl/stackctl/pkg/telemetry/metadata"
)

// Global variables for the process-wide client
var (
	globalTelemetryClient    *Client
	globalTelemetryOnce      sync.Once
	globalTelemetryVersion   = "unknown"
	globalTelemetryDebugMode = false
)

// GetGlobalTelemetryClient returns the global telemetry client for adding to context
func GetGlobalTelemetryClient() *Client {
	EnsureGlobalTelemetryInitialized()
	return globalTelemetryClient
}

// SetGlobalTelemetryVersion sets the version for automatic telemetry initialization
// This should be called by the root package to provide the correct version
func SetGlobalTelemetryVersion(version string) {
	if globalTelemetryClient != nil {
		globalTelemetryClient.setVersion(version)
	}
	globalTelemetryVersion = version
}

// SetGlobalTelemetryDebugMode sets the debug mode for automatic telemetry initialization
// This should be called by the root package to pass the --debug flag state
func SetGlobalTelemetryDebugMode(debug bool) {
	globalTelemetryDebugMode = debug
}

// EnsureGlobalTelemetryInitialized ensures telemetry is initialized exactly once
func EnsureGlobalTelemetryInitialized() {
	globalTelemetryOnce.Do(func() {
		// nil follows slog.Default(), which cmd/root replaces once flags are parsed
		var logger *slog.Logger

		cfg, err := ParseEnvConfig()
		if err != nil {
			NewTelemetryLogger(logger).Warn("Ignoring invalid telemetry environment", "error", err)
			cfg = EnvConfig{GitTimeout: metadata.DefaultTimeout}
		}

		globalTelemetryClient = newClient(logger, cfg, globalTelemetryDebugMode, globalTelemetryVersion)

		if globalTelemetryDebugMode {
			NewTelemetryLogger(logger).Info("Auto-initialized telemetry", "enabled", globalTelemetryClient.Enabled(), "debug", globalTelemetryDebugMode)
		}
	})
}

// TrackEvent records a usage event on the global client.
//
//	func runLocalTests() error {
//		if err := telemetry.TrackEvent("UsedFeature", "LocalTest"); err != nil {
//			return err
//		}
//		...
//	}
func TrackEvent(name, value string) error {
	return GetGlobalTelemetryClient().TrackEvent(name, value)
}

// Flush sends everything tracked on the global client.
func Flush(ctx context.Context) error {
	return GetGlobalTelemetryClient().Flush(ctx)
}
