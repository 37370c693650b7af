package telemetry

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/stackctl/stackctl/pkg/telemetry/events"
	"github.com/stackctl/stackctl/pkg/telemetry/metadata"
	"github.com/stackctl/stackctl/pkg/userconfig"
	"github.com/stackctl/stackctl/pkg/vcs"
)

// telemetryLogger wraps slog.Logger to automatically prepend "[Telemetry]" to all messages
type telemetryLogger struct {
	// logger is nil for the process-wide client, which follows slog.Default()
	// so that a handler installed after startup (--debug) still applies.
	logger *slog.Logger
}

// NewTelemetryLogger creates a new telemetry logger that automatically prepends "[Telemetry]" to all messages.
// A nil logger writes to whatever slog.Default() is at the time of each call.
func NewTelemetryLogger(logger *slog.Logger) *telemetryLogger {
	return &telemetryLogger{logger: logger}
}

func (tl *telemetryLogger) base() *slog.Logger {
	if tl.logger != nil {
		return tl.logger
	}
	return slog.Default()
}

func (tl *telemetryLogger) Debug(msg string, args ...any) {
	tl.base().Debug("[Telemetry] "+msg, args...)
}

func (tl *telemetryLogger) Info(msg string, args ...any) {
	tl.base().Info("[Telemetry] "+msg, args...)
}

func (tl *telemetryLogger) Warn(msg string, args ...any) {
	tl.base().Warn("[Telemetry] "+msg, args...)
}

// Client ties the event queue, the project anonymizer and a sink together.
type Client struct {
	logger   *telemetryLogger
	tracker  *events.Tracker
	metadata *metadata.Anonymizer
	sink     Sink
	enabled  func() bool
	userUUID string
	version  string
	mu       sync.RWMutex
}

func newClient(logger *slog.Logger, cfg EnvConfig, debugMode bool, version string, customHTTPClient ...HTTPClient) *Client {
	telemetryLogger := NewTelemetryLogger(logger)

	tc := &Client{
		logger:  telemetryLogger,
		tracker: events.Default(),
		enabled: GetTelemetryEnabled,
		version: version,
	}

	backend := gitBackend(cfg, userconfig.Load)
	runner, err := vcs.NewRunner(backend, "")
	if err != nil {
		telemetryLogger.Warn("Falling back to the git binary", "error", err)
		runner = &vcs.ExecRunner{}
	}

	tc.metadata = metadata.New(
		metadata.WithEnabled(func() bool { return tc.isEnabled() }),
		metadata.WithRunner(runner),
		metadata.WithTimeout(cfg.GitTimeout),
	)

	if !tc.isEnabled() {
		tc.sink = &DebugSink{logger: telemetryLogger}
		return tc
	}

	tc.userUUID = getUserUUID()

	// Debug mode prints events instead of sending them, unless an API key is configured
	if debugMode && cfg.APIKey == "" {
		tc.sink = &DebugSink{logger: telemetryLogger}
	} else {
		var httpClient HTTPClient = &http.Client{Timeout: 30 * time.Second}
		if len(customHTTPClient) > 0 && customHTTPClient[0] != nil {
			httpClient = customHTTPClient[0]
		}
		tc.sink = NewHTTPSink(logger, httpClient, cfg.Endpoint, cfg.APIKey)
	}

	telemetryLogger.Debug("Enabled", "git_backend", backend, "debug", debugMode)

	return tc
}

func (tc *Client) isEnabled() bool {
	return tc.enabled != nil && tc.enabled()
}

// TrackEvent validates and queues a usage event. The event is queued whether
// or not telemetry is enabled; Flush decides what leaves the process.
func (tc *Client) TrackEvent(name, value string) error {
	if err := tc.tracker.Track(name, value); err != nil {
		return err
	}
	tc.logger.Debug("Event tracked", "event_name", name, "event_value", value, "queued", tc.tracker.Len())
	return nil
}

// Tracker returns the queue this client flushes.
func (tc *Client) Tracker() *events.Tracker {
	return tc.tracker
}

// Metadata returns the anonymizer used to build payloads.
func (tc *Client) Metadata() *metadata.Anonymizer {
	return tc.metadata
}

// Enabled reports whether telemetry is currently enabled.
func (tc *Client) Enabled() bool {
	return tc.isEnabled()
}

// Flush sends the queued events and the project identifiers to the sink in
// one attempt, then empties the queue whatever the outcome.
func (tc *Client) Flush(ctx context.Context) error {
	if !tc.isEnabled() {
		tc.tracker.Clear()
		return nil
	}

	tracked := tc.tracker.Drain()
	if len(tracked) == 0 {
		tc.logger.Debug("Nothing to flush")
		return nil
	}

	payload := tc.createPayload(tracked, tc.metadata.Collect(ctx))
	if err := tc.sink.Send(ctx, &payload); err != nil {
		tc.logger.Debug("Failed to send telemetry events", "error", err, "events", len(tracked))
		return err
	}

	tc.logger.Debug("Flushed telemetry events", "events", len(tracked))
	return nil
}

// setVersion safely sets the version with proper locking
func (tc *Client) setVersion(version string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.version = version
}

// getVersion safely gets the version with proper locking
func (tc *Client) getVersion() string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.version
}
