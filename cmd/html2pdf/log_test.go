package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		quiet, verbose bool
		want           log.Level
	}{
		{"default", false, false, log.InfoLevel},
		{"verbose", false, true, log.DebugLevel},
		{"quiet", true, false, log.ErrorLevel},
		{"quiet wins", true, true, log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := logLevel(tt.quiet, tt.verbose); got != tt.want {
				t.Errorf("logLevel(%v, %v) = %v, want %v", tt.quiet, tt.verbose, got, tt.want)
			}
		})
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, log.ErrorLevel)
	logger.Info("hidden")
	logger.Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected log output:\n%s", out)
	}
}
