package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	defer Init(Config{Level: "error"})

	buf := &bytes.Buffer{}
	if err := Init(Config{Level: "info", Output: buf}); err != nil {
		t.Fatal(err)
	}
	Log.Debugw("hidden")
	Log.Infow("launching", "version", "1.8.9")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "launching") || !strings.Contains(out, "1.8.9") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestInit_invalidLevel(t *testing.T) {
	if err := Init(Config{Level: "loud"}); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}
