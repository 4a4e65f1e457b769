// Package testutil provides shared helpers for scheckbl tests.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// TestLogger returns a structured logger suitable for tests.
//
// By default it discards output unless `go test -v` is used.
func TestLogger(t *testing.T) *log.Logger {
	t.Helper()

	var out io.Writer = io.Discard
	if testing.Verbose() {
		out = os.Stderr
	}

	return log.NewWithOptions(out, log.Options{
		Level:  log.DebugLevel,
		Prefix: t.Name(),
	})
}

// WriteDataset creates a dataset file under dir laid out as the store
// expects (<type>/<category>/<file>) and returns the category directory.
func WriteDataset(t *testing.T, dir, typeName, category, filename string, entries []string) string {
	t.Helper()

	catDir := filepath.Join(dir, typeName, category)
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := strings.Join(entries, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(catDir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return catDir
}
