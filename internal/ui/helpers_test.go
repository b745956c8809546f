package ui

import (
	"os"
	"testing"
)

// unsetNoColor removes NO_COLOR for the duration of the test. It must be
// called after t.Setenv so the original value is restored on cleanup.
func unsetNoColor(t *testing.T) {
	t.Helper()
	if err := os.Unsetenv("NO_COLOR"); err != nil {
		t.Fatalf("Failed to unset NO_COLOR: %v", err)
	}
}
