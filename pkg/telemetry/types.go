package telemetry

import (
	"context"
	"net/http"

	"github.com/stackctl/stackctl/pkg/telemetry/events"
	"github.com/stackctl/stackctl/pkg/telemetry/metadata"
)

// EventUsage is the payload event name for a flushed batch of usage events.
const EventUsage = "usage"

// Payload is what a flush hands to a Sink.
type Payload struct {
	Event          string     `json:"event"`
	EventTimestamp int64      `json:"event_timestamp"`
	Source         string     `json:"source"`
	Properties     Properties `json:"properties"`
}

// Properties carries the tracked events and the environment they ran in.
type Properties struct {
	UserUUID   string               `json:"user_uuid,omitempty"`
	Version    string               `json:"version"`
	OS         string               `json:"os"`
	OSLanguage string               `json:"os_language"`
	Metadata   metadata.Identifiers `json:"metadata"`
	Events     []events.Event       `json:"events"`
}

// Sink delivers a payload. Implementations make a single attempt.
type Sink interface {
	Send(ctx context.Context, payload *Payload) error
}

// HTTPClient interface for making HTTP requests (allows mocking in tests)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
