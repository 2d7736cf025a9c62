package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "warn", "text")
	l.Info("hidden")
	l.Warn("shown", "rows", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message emitted at warn level")
	}

	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "rows=3") {
		t.Errorf("unexpected text output: %q", out)
	}

	if l.Enabled(slog.LevelDebug) || !l.Enabled(slog.LevelError) {
		t.Error("Enabled does not follow the configured level")
	}
}

func TestNew_JSONWithAttributes(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "info", "json").With("stage", "load")
	l.Info("load complete", "rows", 11)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}

	if entry["msg"] != "load complete" || entry["stage"] != "load" || entry["rows"] != float64(11) {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestWith_KeepsLevel(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "warn", "text").With("stage", "clean")
	l.Info("hidden")
	l.Warn("rows dropped", "dropped", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "stage=clean") {
		t.Errorf("child logger lost level or attributes: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")

	if l.Enabled(slog.LevelWarn) {
		t.Error("Discard logger should only enable error level")
	}
}
