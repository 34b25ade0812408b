package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_LevelFollowsVerbose(t *testing.T) {
	var buf bytes.Buffer
	Init(NewConsole(Options{Output: &buf}))
	defer Init()

	Debug("hidden")
	Warn("no person found", "id", "1:1:X")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged without verbose: %q", out)
	}
	if !strings.Contains(out, "no person found") || !strings.Contains(out, "1:1:X") {
		t.Errorf("expected warning with key/value, got %q", out)
	}

	buf.Reset()
	Init(NewConsole(Options{Output: &buf, Verbose: true}))
	Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug message with verbose, got %q", buf.String())
	}
}

func TestNoBackends(t *testing.T) {
	Init()
	// must not panic
	Info("nothing")
	Error("nothing")
}
