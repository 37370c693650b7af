// Package metadata derives anonymized identifiers for the project the CLI
// runs in: its git origin, its name and its initial commit.
//
// Nothing is read from the environment while telemetry is disabled, and a
// lookup that fails simply yields no identifier.
package metadata

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stackctl/stackctl/pkg/vcs"
)

const DefaultTimeout = 2 * time.Second

const tracerName = "github.com/stackctl/stackctl/pkg/telemetry/metadata"

// Identifiers groups the three project identifiers. Missing ones are empty.
type Identifiers struct {
	ProjectID     string `json:"project_id,omitempty"`
	ProjectName   string `json:"project_name,omitempty"`
	InitialCommit string `json:"initial_commit,omitempty"`
}

// Anonymizer derives project identifiers from git metadata.
type Anonymizer struct {
	enabled func() bool
	runner  vcs.Runner
	getwd   func() (string, error)
	timeout time.Duration
	tracer  trace.Tracer
}

type Option func(*Anonymizer)

// WithEnabled sets the telemetry gate. It is consulted on every call.
func WithEnabled(enabled func() bool) Option {
	return func(a *Anonymizer) {
		a.enabled = enabled
	}
}

func WithRunner(runner vcs.Runner) Option {
	return func(a *Anonymizer) {
		a.runner = runner
	}
}

func WithGetwd(getwd func() (string, error)) Option {
	return func(a *Anonymizer) {
		a.getwd = getwd
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(a *Anonymizer) {
		a.timeout = timeout
	}
}

// New returns an Anonymizer. Without WithEnabled it stays disabled.
func New(opts ...Option) *Anonymizer {
	a := &Anonymizer{
		enabled: func() bool { return false },
		runner:  &vcs.ExecRunner{},
		getwd:   os.Getwd,
		timeout: DefaultTimeout,
		tracer:  otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// GitOriginURL returns the identifier of the remote origin URL.
func (a *Anonymizer) GitOriginURL(ctx context.Context) (string, bool) {
	if !a.enabled() {
		return "", false
	}

	ctx, span := a.tracer.Start(ctx, "metadata.GitOriginURL")
	defer span.End()

	canonical, ok := a.canonicalOrigin(ctx)
	span.SetAttributes(attribute.Bool("found", ok))
	if !ok {
		return "", false
	}
	return Hash(canonical), true
}

// ProjectName returns the identifier of the repository name, or of the
// working directory when there is no origin.
func (a *Anonymizer) ProjectName(ctx context.Context) (string, bool) {
	if !a.enabled() {
		return "", false
	}

	ctx, span := a.tracer.Start(ctx, "metadata.ProjectName")
	defer span.End()

	if canonical, ok := a.canonicalOrigin(ctx); ok {
		span.SetAttributes(attribute.String("source", "origin"))
		return Hash(ProjectBasename(canonical)), true
	}

	cwd, err := a.getwd()
	if err != nil {
		slog.Debug("Failed to get working directory", "error", err)
		span.SetAttributes(attribute.String("source", "none"))
		return "", false
	}

	span.SetAttributes(attribute.String("source", "cwd"))
	return Hash(NormalizePath(cwd)), true
}

// InitialCommitHash returns the identifier of the root commit reachable from HEAD.
func (a *Anonymizer) InitialCommitHash(ctx context.Context) (string, bool) {
	if !a.enabled() {
		return "", false
	}

	ctx, span := a.tracer.Start(ctx, "metadata.InitialCommitHash")
	defer span.End()

	out, err := a.runner.Run(ctx, a.timeout, vcs.RootCommitArgs...)
	if err != nil {
		slog.Debug("Failed to read initial commit", "error", err)
		span.SetAttributes(attribute.Bool("found", false))
		return "", false
	}

	span.SetAttributes(attribute.Bool("found", true))
	return Hash(strings.TrimSpace(out)), true
}

// Collect derives all identifiers concurrently, so the slowest lookup bounds
// the call. The lookups cannot fail, only come back empty, so there is no
// error to propagate or cancel on.
func (a *Anonymizer) Collect(ctx context.Context) Identifiers {
	var (
		ids Identifiers
		wg  sync.WaitGroup
	)

	wg.Go(func() { ids.ProjectID, _ = a.GitOriginURL(ctx) })
	wg.Go(func() { ids.ProjectName, _ = a.ProjectName(ctx) })
	wg.Go(func() { ids.InitialCommit, _ = a.InitialCommitHash(ctx) })
	wg.Wait()

	return ids
}

func (a *Anonymizer) canonicalOrigin(ctx context.Context) (string, bool) {
	out, err := a.runner.Run(ctx, a.timeout, vcs.RemoteOriginURLArgs...)
	if err != nil {
		slog.Debug("Failed to read git remote origin", "error", err)
		return "", false
	}
	return CanonicalOrigin(out), true
}
