// Package telemetry provides anonymous usage tracking for stackctl.
//
// Usage events are validated against a closed taxonomy (package events) and
// queued in-process until Flush sends them, together with anonymized project
// identifiers (package metadata), in a single request. Telemetry can be
// disabled at any time with TELEMETRY_ENABLED=false or in the user config.
//
// The system does NOT collect:
// - Command arguments or file contents
// - Repository URLs, project names or paths in clear text
// - API keys or credentials
//
// Files in this package:
// - client.go: Client construction and the [Telemetry] logger
// - config.go: enablement gate and environment configuration
// - http.go: payload creation and the HTTP and debug sinks
// - global.go: process-wide client and convenience functions
// - context.go: carrying a client through a context
// - types.go: payload and sink types
package telemetry
