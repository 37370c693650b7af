package logging

import (
	"cmp"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/stackctl/stackctl/pkg/paths"
)

// DefaultLogFile returns the debug log path under the data directory.
func DefaultLogFile() string {
	return filepath.Join(paths.GetDataDir(), "stackctl.debug.log")
}

// Setup installs the default slog logger. Without debug, logs are discarded.
// With debug, they go to a rotating file at path (or DefaultLogFile), bounded
// by the STACKCTL_LOG_* limits, which the caller must close.
func Setup(debug bool, path string) (io.Closer, error) {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil, nil
	}

	path = cmp.Or(strings.TrimSpace(path), DefaultLogFile())

	rot, rotErr := ParseRotation()

	logFile, err := OpenRotating(path, rot)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if rotErr != nil {
		slog.Warn("Using default log rotation", "error", rotErr)
	}
	slog.Debug("Debug logging enabled", "path", path, "max_size", rot.MaxSize, "max_backups", rot.MaxBackups)

	return logFile, nil
}
