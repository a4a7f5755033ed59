// Package testutil provides shared helpers for tests that exercise the
// file-backed stores. Every helper works inside t.TempDir(), so tests never
// touch the working directory and need no cleanup.
package testutil

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkordes/trip-planner/internal/repo"
)

// DataFile returns a repo.DataFile for a file called name inside a fresh
// temporary directory. Logs are discarded.
func DataFile(t *testing.T, name string) repo.DataFile {
	t.Helper()
	return repo.DataFile{Path: filepath.Join(t.TempDir(), name)}
}

// CapturingDataFile is DataFile with logs written as JSON lines into the
// returned buffer, for tests that assert on load or save diagnostics.
func CapturingDataFile(t *testing.T, name string) (repo.DataFile, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	f := DataFile(t, name)
	f.Log = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return f, &buf
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("testutil.WriteFile: %v", err)
	}
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("testutil.ReadFile: %v", err)
	}
	return string(b)
}

// Unwritable returns a DataFile whose path sits under a regular file, so every
// save fails. Use it to exercise domain.ErrPersist handling.
func Unwritable(t *testing.T) repo.DataFile {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	WriteFile(t, blocker, "")
	return repo.DataFile{Path: filepath.Join(blocker, "data.txt")}
}
