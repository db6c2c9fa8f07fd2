package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(&buf, "warn", "json")

	slog.Info("dropped")
	slog.Warn("kept", "line", 4)

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record written at warn level: %s", out)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("output is not a single JSON record: %v (%s)", err, out)
	}
	if rec["msg"] != "kept" {
		t.Errorf("msg = %v, want kept", rec["msg"])
	}
	if rec["line"] != float64(4) {
		t.Errorf("line = %v, want 4", rec["line"])
	}
}
