package minecraft

import (
	"encoding/json"
	"testing"
)

func TestStringSlice(t *testing.T) {
	var s stringSlice
	err := json.Unmarshal([]byte(`["a", "b"]`), &s)
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "a b" {
		t.Fatalf("Expected 'a b', got '%s'", s.String())
	}

	err = json.Unmarshal([]byte(`"a b"`), &s)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 1 || s[0] != "a b" {
		t.Fatalf("Expected a single 'a b' element, got %#v", s)
	}
}

func TestArgument_UnmarshalJSON(t *testing.T) {
	var args []Argument
	raw := `["--username", {"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]}, {"rules": [], "value": "--demo"}]`
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		t.Fatal(err)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(args))
	}
	if args[0].Value[0] != "--username" || len(args[0].Rules) != 0 {
		t.Errorf("plain string argument parsed as %#v", args[0])
	}
	if args[1].Rules[0].OS.Name != "osx" || args[1].Value[0] != "-XstartOnFirstThread" {
		t.Errorf("rule argument parsed as %#v", args[1])
	}
	if args[2].Value[0] != "--demo" {
		t.Errorf("string value parsed as %#v", args[2])
	}
}
