package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	logger := New("test")

	tests := []struct {
		name     string
		level    Level
		expected []string
		hidden   []string
	}{
		{"notice", Notice, []string{"notice msg", "error msg"}, []string{"debug msg", "info msg"}},
		{"debug", Debug, []string{"debug msg", "info msg", "notice msg", "error msg"}, nil},
		{"error", Error, []string{"error msg"}, []string{"info msg", "notice msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			SetLevel(tt.level)

			logger.Debug("debug msg")
			logger.Info("info msg")
			logger.Noticef("%s msg", "notice")
			logger.Errorf("%s msg", "error")

			out := buf.String()
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("Expected output to contain %q, got %q", want, out)
				}
			}
			for _, unwanted := range tt.hidden {
				if strings.Contains(out, unwanted) {
					t.Errorf("Expected output to omit %q, got %q", unwanted, out)
				}
			}
		})
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	New("renderer").Notice("hello")

	out := buf.String()
	if !strings.Contains(out, "[renderer] [NOTICE] hello") {
		t.Errorf("Unexpected log line format: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("Expected no color codes for a buffer sink, got %q", out)
	}
}
