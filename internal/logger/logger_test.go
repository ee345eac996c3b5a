package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggingBeforeInitIsSafe(t *testing.T) {
	Debug("nothing configured yet", "k", "v")
	Error("still fine")
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ask.log")
	if err := Init("info", path, "session", "abc"); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("hidden")
	Info("shown", "tag", "demo")

	if err := Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level:\n%s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "tag=demo") || !strings.Contains(out, "session=abc") {
		t.Errorf("missing fields in:\n%s", out)
	}
}

func TestInitEmptyPathDisabled(t *testing.T) {
	if err := Init("debug", ""); err != nil {
		t.Fatalf("init: %v", err)
	}
	Info("goes nowhere")
}
