package util

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ztcp", 2) // verbose
	l.SetOutput(&buf)

	l.Error("e")
	l.Warn("w")
	l.Verbose("v")
	l.Debug("d") // suppressed below debug level

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), output)
	}

	wantPrefixes := []string{"ztcp:", "ztcp:", "[VRB]"}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d %q missing prefix %q", i, lines[i], prefix)
		}
	}
}

func TestLogger_QuietMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ztcp", 0) // quiet
	l.SetOutput(&buf)

	l.Warn("should not appear")
	l.Verbose("should not appear")
	l.Debug("should not appear")
	l.Error("always appears")

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Errorf("expected 1 line in quiet mode, got %d:\n%s", len(lines), output)
	}
}

func TestLogger_WarnErr(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ztcp", 1)
	l.SetOutput(&buf)

	l.WarnErr("connection close failed", errors.New("bad file descriptor"))

	got := buf.String()
	want := "ztcp: connection close failed: bad file descriptor\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_DebugTimestamps(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ztcp", 3) // debug auto-enables timestamps
	l.SetOutput(&buf)

	l.Debug("test")

	output := buf.String()
	// Timestamp format is "HH:MM:SS.mmm"
	if !strings.Contains(output, ":") || len(output) < 15 {
		t.Errorf("expected timestamp prefix, got %q", output)
	}
}
