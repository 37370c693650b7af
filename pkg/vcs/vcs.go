// Package vcs runs the handful of read-only git queries the CLI needs.
//
// Two backends implement Runner: ExecRunner shells out to the git binary and
// RepositoryRunner answers the same queries in-process with go-git.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnavailable is wrapped by every failure to obtain an answer from git:
	// missing binary, not a repository, non-zero exit or timeout.
	ErrUnavailable = errors.New("git unavailable")
	// ErrUnsupported is returned by backends that only understand a fixed set of queries.
	ErrUnsupported = errors.New("unsupported git query")
)

const (
	BackendExec    = "exec"
	BackendBuiltin = "builtin"
)

// Query arguments understood by every backend.
var (
	RemoteOriginURLArgs = []string{"config", "--get", "remote.origin.url"}
	RootCommitArgs      = []string{"rev-list", "--max-parents=0", "HEAD"}
)

// Runner runs a git query and returns its raw standard output.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, args ...string) (string, error)
}

// NewRunner returns the runner for the named backend, rooted at dir.
// An empty backend selects BackendExec.
func NewRunner(backend, dir string) (Runner, error) {
	switch backend {
	case "", BackendExec:
		return &ExecRunner{Dir: dir}, nil
	case BackendBuiltin:
		return &RepositoryRunner{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", backend)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
