package telemetry

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/stackctl/stackctl/pkg/telemetry/events"
	"github.com/stackctl/stackctl/pkg/telemetry/metadata"
)

// getSystemInfo collects system information for events
func getSystemInfo() (osName, osLanguage string) {
	return runtime.GOOS, cmp.Or(os.Getenv("LANG"), "en-US")
}

// createPayload builds the payload for a batch of events
func (tc *Client) createPayload(tracked []events.Event, ids metadata.Identifiers) Payload {
	osName, osLanguage := getSystemInfo()

	return Payload{
		Event:          EventUsage,
		EventTimestamp: time.Now().UnixMilli(),
		Source:         "stackctl",
		Properties: Properties{
			UserUUID:   tc.userUUID,
			Version:    tc.getVersion(),
			OS:         osName,
			OSLanguage: osLanguage,
			Metadata:   ids,
			Events:     tracked,
		},
	}
}

// HTTPSink posts payloads to the telemetry endpoint.
type HTTPSink struct {
	logger     *telemetryLogger
	httpClient HTTPClient
	endpoint   string
	apiKey     string
	header     string
}

var _ Sink = (*HTTPSink)(nil)

func NewHTTPSink(logger *slog.Logger, httpClient HTTPClient, endpoint, apiKey string) *HTTPSink {
	return &HTTPSink{
		logger:     NewTelemetryLogger(logger),
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		header:     "x-api-key",
	}
}

// Send performs a single POST of the payload wrapped in a records array.
func (s *HTTPSink) Send(ctx context.Context, payload *Payload) error {
	if s.endpoint == "" {
		return fmt.Errorf("no telemetry endpoint configured")
	}

	requestBody := map[string]any{
		"records": []any{payload},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request to JSON: %w", err)
	}

	// Send request with timeout context
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("stackctl/%s", payload.Properties.Version))
	if s.apiKey != "" && s.header != "" {
		req.Header.Set(s.header, s.apiKey)
	}

	s.logger.Debug("HTTP request details",
		"method", req.Method,
		"url", req.URL.String(),
		"has_header", req.Header.Get(s.header) != "",
		"payload_size", len(jsonData),
		"events", len(payload.Properties.Events),
	)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read up to 1KB of error response
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		s.logger.Debug("HTTP error response details",
			"status_code", resp.StatusCode,
			"status_text", resp.Status,
			"response_body", string(body),
		)

		return fmt.Errorf("HTTP request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// DebugSink logs payloads instead of sending them.
type DebugSink struct {
	logger *telemetryLogger
}

var _ Sink = (*DebugSink)(nil)

func NewDebugSink(logger *slog.Logger) *DebugSink {
	return &DebugSink{logger: NewTelemetryLogger(logger)}
}

func (s *DebugSink) Send(_ context.Context, payload *Payload) error {
	output, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry payload: %w", err)
	}
	s.logger.Info("event", "payload", string(output))
	return nil
}
