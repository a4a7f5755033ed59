package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DataFile describes the text file a store persists to.
type DataFile struct {
	// Path is the data file location. Its directory is created on first save.
	Path string

	// Retries bounds how many times a failed write is retried before the
	// save is reported as domain.ErrPersist. Zero means a single attempt.
	Retries uint64

	// Log receives load and save outcomes. Nil discards them.
	Log *slog.Logger
}

func (f DataFile) logger() *slog.Logger {
	if f.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Log
}

// read returns the file contents, or nil when the file does not exist.
func (f DataFile) read() ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// write replaces the file with b. Each attempt writes a temp file in the same
// directory and renames it over the target, so readers never observe a
// half-written file. Failed attempts are retried with exponential backoff.
func (f DataFile) write(ctx context.Context, b []byte) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 25 * time.Millisecond
	bo.MaxInterval = 250 * time.Millisecond

	attempt := 0
	op := func() error {
		attempt++
		err := writeFileAtomic(f.Path, b, 0o644)
		if err != nil {
			f.logger().WarnContext(ctx, "write attempt failed", "path", f.Path, "attempt", attempt, "error", err)
		}
		return err
	}
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, f.Retries), ctx))
}

// persistErr wraps a write failure so callers can detect it with
// errors.Is(err, domain.ErrPersist) while keeping the cause.
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersist, err)
}

func writeFileAtomic(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Removing after a successful rename is a no-op.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
