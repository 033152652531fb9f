package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning level", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "uppercase DEBUG", input: "DEBUG", expected: slog.LevelDebug},
		{name: "mixed case Info", input: "Info", expected: slog.LevelInfo},
		{name: "empty string defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown level defaults to info", input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInitLoggerJSONCarriesService(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Output: &buf, Level: "debug", Format: "json", Service: "agricreditd"})

	logger.Info("assessment completed", "score", 72)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if record["service"] != "agricreditd" {
		t.Errorf("expected service attribute, got %v", record["service"])
	}
	if record["msg"] != "assessment completed" {
		t.Errorf("unexpected msg %v", record["msg"])
	}
	if record["score"] != float64(72) {
		t.Errorf("unexpected score %v", record["score"])
	}
}

func TestInitLoggerTextDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Output: &buf, Level: "info"})

	logger.Info("hello", "key", "value")

	if !strings.Contains(buf.String(), "key=value") {
		t.Errorf("expected text handler output, got %q", buf.String())
	}
}

func TestInitLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Output: &buf, Level: "warn", Format: "json"})

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be suppressed at warn level, got %q", buf.String())
	}

	logger.Warn("emitted")
	if !strings.Contains(buf.String(), "emitted") {
		t.Errorf("expected warn record, got %q", buf.String())
	}
}
