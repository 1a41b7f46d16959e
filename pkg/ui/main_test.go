package ui

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Keep debug logging from leaking into test output and the clipboard
	// untouched by accident.
	os.Unsetenv("DQ_DEBUG")
	os.Unsetenv("DQ_DEBUG_FILE")

	os.Exit(m.Run())
}
