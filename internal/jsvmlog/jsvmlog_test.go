package jsvmlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerSuppressesBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, LevelError)
	lg.Debugf("should not appear")
	lg.Infof("should not appear either")
	if buf.Len() != 0 {
		t.Fatalf("buf = %q, want empty at LevelError", buf.String())
	}

	lg.Errorf("boom %d", 42)
	if !strings.Contains(buf.String(), "boom 42") {
		t.Fatalf("buf = %q, want it to contain %q", buf.String(), "boom 42")
	}
}

func TestLoggerDebugLevelEmitsEverything(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, LevelDebug)
	lg.Debugf("d")
	lg.Infof("i")
	lg.Errorf("e")

	out := buf.String()
	for _, want := range []string{"debug: d", "i", "error: e"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSetVerboseTogglesDefaultLevel(t *testing.T) {
	SetVerbose(true)
	if Default.level != LevelDebug {
		t.Fatalf("level = %v, want LevelDebug after SetVerbose(true)", Default.level)
	}
	SetVerbose(false)
	if Default.level != LevelError {
		t.Fatalf("level = %v, want LevelError after SetVerbose(false)", Default.level)
	}
}
