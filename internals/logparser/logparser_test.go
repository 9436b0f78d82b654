package logparser

import (
	"bytes"
	"fmt"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		garbage bool
		level   string
	}{
		{
			name:    "crap",
			arg:     "I am crap string",
			garbage: true,
		},
		{
			name:  "forge",
			arg:   "[13:46:33] [main/INFO] [FML]: Forge bla bla for Minecraft 1.12.2 loading",
			level: "INFO",
		},
		{
			name:  "vanilla",
			arg:   "[13:46:34] [Render thread/ERROR]: Could not load texture",
			level: "ERROR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := ParseLine(tt.arg)
			if line.Garbage != tt.garbage {
				t.Fatalf("Garbage = %v, want %v", line.Garbage, tt.garbage)
			}
			if line.Level != tt.level {
				t.Errorf("Level = %q, want %q", line.Level, tt.level)
			}
			if line.String() != tt.arg {
				t.Fatalf("Input %q did not produce same output: \nexpected %s\ngot      %s\n", tt.name, tt.arg, line.String())
			}
		})
	}
}

func TestWatcher(t *testing.T) {
	var out bytes.Buffer
	w := NewWatcher(&out)
	w.Keep = 2

	input := "[10:00:00] [main/INFO]: starting\n" +
		"[10:00:01] [main/ERROR]: first\n" +
		"[10:00:02] [main/WARN]: careful\r\n" +
		"[10:00:03] [Server thread/FATAL]: second\n" +
		"[10:00:04] [main/ERROR]: th"
	// split writes in the middle of lines
	for i := 0; i < len(input); i += 7 {
		end := i + 7
		if end > len(input) {
			end = len(input)
		}
		if _, err := w.Write([]byte(input[i:end])); err != nil {
			t.Fatal(err)
		}
	}
	fmt.Fprint(w, "ird\n")

	if out.String() != input+"ird\n" {
		t.Errorf("output was not forwarded unchanged: %q", out.String())
	}

	errs := w.Errors()
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2", len(errs))
	}
	if errs[0].Message != "second" || errs[1].Message != "third" {
		t.Errorf("unexpected errors %v %v", errs[0], errs[1])
	}
}
