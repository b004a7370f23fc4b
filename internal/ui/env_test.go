package ui

import (
	"os"
	"testing"
)

// unsetNoColor removes NO_COLOR for the duration of t.
func unsetNoColor(t *testing.T) {
	t.Helper()
	prev, had := os.LookupEnv("NO_COLOR")
	os.Unsetenv("NO_COLOR")
	t.Cleanup(func() {
		if had {
			os.Setenv("NO_COLOR", prev)
		}
	})
}
