package vcs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct {
	// Dir is the working directory of the command. Empty means the current directory.
	Dir string
	// Binary overrides the executable name. Empty means "git".
	Binary string
}

var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	name := r.Binary
	if name == "" {
		name = "git"
	}

	if _, err := exec.LookPath(name); err != nil {
		if !errors.Is(err, exec.ErrNotFound) {
			slog.Warn("failed to lookup `"+name+"` binary", "error", err)
		}
		return "", unavailable(err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		slog.Debug("git command failed", "args", args, "error", err, "stderr", strings.TrimSpace(stderr.String()))
		return "", unavailable(err)
	}

	return stdout.String(), nil
}
