// Package logging configures the process logger and its rotating debug log file.
package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
)

// Rotation bounds the disk space used by the debug log: the live file plus
// at most MaxBackups numbered generations (log.1 is the newest).
type Rotation struct {
	MaxSize    int64 `env:"STACKCTL_LOG_MAX_SIZE" envDefault:"10485760"`
	MaxBackups int   `env:"STACKCTL_LOG_MAX_BACKUPS" envDefault:"3"`
}

// DefaultRotation is used when the environment does not parse.
var DefaultRotation = Rotation{MaxSize: 10 << 20, MaxBackups: 3}

// ParseRotation reads the rotation limits from the environment.
func ParseRotation() (Rotation, error) {
	var rot Rotation
	if err := env.Parse(&rot); err != nil {
		return DefaultRotation, fmt.Errorf("parse log rotation: %w", err)
	}
	if rot.MaxSize <= 0 {
		return DefaultRotation, fmt.Errorf("STACKCTL_LOG_MAX_SIZE must be positive, got %d", rot.MaxSize)
	}
	if rot.MaxBackups < 0 {
		return DefaultRotation, fmt.Errorf("STACKCTL_LOG_MAX_BACKUPS must not be negative, got %d", rot.MaxBackups)
	}
	return rot, nil
}

// RotatingFile appends to a log file and moves it aside once a write would
// take it past the rotation size.
type RotatingFile struct {
	path string
	rot  Rotation

	mu      sync.Mutex
	current *os.File
	written int64
}

// OpenRotating opens (or creates) the log at path, creating its directory.
func OpenRotating(path string, rot Rotation) (*RotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f := &RotatingFile{path: path, rot: rot}
	if err := f.open(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RotatingFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A record larger than the limit still goes to a fresh file rather than
	// rotating an empty one.
	if f.written > 0 && f.written+int64(len(p)) > f.rot.MaxSize {
		if err := f.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := f.current.Write(p)
	f.written += int64(n)
	return n, err
}

func (f *RotatingFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return nil
	}
	err := f.current.Close()
	f.current = nil
	return err
}

func (f *RotatingFile) open() error {
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("stat log file: %w", err)
	}

	f.current = file
	f.written = info.Size()
	return nil
}

func (f *RotatingFile) rotate() error {
	if err := f.current.Close(); err != nil {
		return err
	}
	f.current = nil

	if f.rot.MaxBackups == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return f.open()
	}

	// log -> log.1 -> log.2 ... ; the oldest generation is overwritten.
	for gen := f.rot.MaxBackups; gen > 0; gen-- {
		from := f.generation(gen - 1)
		if err := os.Rename(from, f.generation(gen)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return f.open()
}

// generation returns the live path for 0 and the numbered backup otherwise.
func (f *RotatingFile) generation(n int) string {
	if n == 0 {
		return f.path
	}
	return fmt.Sprintf("%s.%d", f.path, n)
}
