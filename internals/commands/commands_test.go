package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/minepkg/openlauncher/internals/merrors"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantHelp bool
	}{
		{"not set up", fmt.Errorf("wrapped: %w", merrors.ErrNotSetUp), "configuration", true},
		{"runtime", &merrors.RuntimeNotFoundError{Dir: "/java/adoptopenjre16"}, "resolution", true},
		{"spawn", &merrors.SpawnError{Command: "java"}, "spawn", true},
		{"install", &merrors.InstallFailedError{URL: "u", Target: "t"}, "install", true},
		{"plain", fmt.Errorf("something"), "unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromError(tt.err)
			if c.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", c.Code, tt.wantCode)
			}
			if (c.Help != "") != tt.wantHelp {
				t.Errorf("Help = %q", c.Help)
			}
			if c.Text != tt.err.Error() {
				t.Errorf("Text = %q", c.Text)
			}
		})
	}

	same := &CliError{Text: "x"}
	if FromError(fmt.Errorf("outer: %w", same)) != same {
		t.Error("CliErrors should be passed through")
	}
}

func TestRichError(t *testing.T) {
	EmojiEnabled = false
	defer func() { EmojiEnabled = true }()

	out := FromError(&merrors.SpawnError{Command: "java"}).RichError()
	for _, want := range []string{"Error:", "Help:", "Suggestion:"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered error misses %q:\n%s", want, out)
		}
	}
}
