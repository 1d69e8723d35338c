// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/finance-calculator/pkg/history"
)

// FindEntry finds the newest history entry whose label starts with prefix.
// Returns a pointer to the entry if found, nil otherwise.
func FindEntry(entries []history.Entry, prefix string) *history.Entry {
	for i := range entries {
		if strings.HasPrefix(entries[i].Label, prefix) {
			return &entries[i]
		}
	}
	return nil
}

// WriteFile writes contents to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t testing.TB, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
