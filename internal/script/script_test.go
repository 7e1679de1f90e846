package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const handoff = `
name = "handoff"

[[steps]]
event = "created"
screen = "main"

[[steps]]
event = " Started "
screen = "main"

[[steps]]
event = "stopped"
screen = "main"
finishing = true
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(handoff))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.Name != "handoff" {
		t.Errorf("Name = %q, want handoff", s.Name)
	}
	want := []Step{
		{Event: CallbackCreated, Screen: "main"},
		{Event: CallbackStarted, Screen: "main"},
		{Event: CallbackStopped, Screen: "main", Finishing: true},
	}
	if len(s.Steps) != len(want) {
		t.Fatalf("Steps = %v, want %v", s.Steps, want)
	}
	for i := range want {
		if s.Steps[i] != want[i] {
			t.Errorf("Steps[%d] = %+v, want %+v", i, s.Steps[i], want[i])
		}
	}
	if got := s.Steps[2].String(); got != "stopped main (finishing)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errText string
	}{
		{"not toml", "[[steps]\nevent=", ""},
		{"no steps", `name = "x"`, "no steps"},
		{"unknown event", "[[steps]]\nevent = \"teleported\"\nscreen = \"a\"", "unknown event"},
		{"missing screen", "[[steps]]\nevent = \"created\"", "screen is required"},
		{"finishing on pause", "[[steps]]\nevent = \"paused\"\nscreen = \"a\"\nfinishing = true", "finishing only applies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, ErrInvalidScript) {
				t.Fatalf("Parse() error = %v, want ErrInvalidScript", err)
			}
			if tt.errText != "" && !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.errText)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unnamed.toml")
	body := "[[steps]]\nevent = \"created\"\nscreen = \"main\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Name != path {
		t.Errorf("Name = %q, want path %q", s.Name, path)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want not-exist", err)
	}
}
