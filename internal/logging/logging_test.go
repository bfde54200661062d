package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelInfo, "text", &buf)

	logger.Info("plan computed", "scheduled", 3)

	output := buf.String()
	if !strings.Contains(output, "plan computed") {
		t.Errorf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, "scheduled=3") {
		t.Errorf("expected scheduled=3 in output, got: %s", output)
	}
	if !strings.Contains(output, "app=taskplan") {
		t.Errorf("expected app attribute in output, got: %s", output)
	}
}

func TestNewLoggerWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelInfo, "JSON", &buf)

	logger.Info("task added", "task", "build")

	output := buf.String()
	if !strings.Contains(output, `"msg":"task added"`) {
		t.Errorf("expected JSON msg field in output, got: %s", output)
	}
	if !strings.Contains(output, `"task":"build"`) {
		t.Errorf("expected JSON task field in output, got: %s", output)
	}
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelWarn, "text", &buf)

	logger.Info("should not appear")
	logger.Warn("should appear")

	output := buf.String()
	if strings.Contains(output, "should not appear") {
		t.Errorf("INFO message should be filtered at WARN level, got: %s", output)
	}
	if !strings.Contains(output, "should appear") {
		t.Errorf("WARN message should appear at WARN level, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLookupLevel_Unknown(t *testing.T) {
	if _, err := LookupLevel("verbose"); err == nil {
		t.Error("LookupLevel(verbose) succeeded, want error")
	}
	if lvl, err := LookupLevel(" Warn "); err != nil || lvl != slog.LevelWarn {
		t.Errorf("LookupLevel(Warn) = %v, %v", lvl, err)
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "TEXT"} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false", f)
		}
	}
	if ValidFormat("xml") {
		t.Error("ValidFormat(xml) = true")
	}
}
