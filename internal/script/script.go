// Package script reads replay scripts: TOML files listing raw host callbacks
// in the order a UI runtime would deliver them.
//
//	name = "open settings"
//
//	[[steps]]
//	event  = "created"
//	screen = "main"
//
//	[[steps]]
//	event     = "stopped"
//	screen    = "main"
//	finishing = true
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// ErrInvalidScript is returned when a script fails validation.
var ErrInvalidScript = errors.New("script: invalid")

// Callback names a raw host callback.
type Callback string

// Host callbacks understood by scripts.
const (
	CallbackCreated   Callback = "created"
	CallbackStarted   Callback = "started"
	CallbackResumed   Callback = "resumed"
	CallbackPaused    Callback = "paused"
	CallbackStopped   Callback = "stopped"
	CallbackSaveState Callback = "save-state"
	CallbackDestroyed Callback = "destroyed"
)

var callbacks = map[Callback]bool{
	CallbackCreated:   true,
	CallbackStarted:   true,
	CallbackResumed:   true,
	CallbackPaused:    true,
	CallbackStopped:   true,
	CallbackSaveState: true,
	CallbackDestroyed: true,
}

// Step is one host callback.
type Step struct {
	Event     Callback `toml:"event"`
	Screen    string   `toml:"screen"`
	Finishing bool     `toml:"finishing"`
}

func (s Step) String() string {
	if s.Finishing {
		return fmt.Sprintf("%s %s (finishing)", s.Event, s.Screen)
	}
	return fmt.Sprintf("%s %s", s.Event, s.Screen)
}

// Script is a named sequence of steps.
type Script struct {
	Name  string `toml:"name"`
	Steps []Step `toml:"steps"`
}

// Load reads and validates the script at path.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		st.Event = Callback(strings.ToLower(strings.TrimSpace(string(st.Event))))
		st.Screen = strings.TrimSpace(st.Screen)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// Validate checks every step names a known callback and a screen.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if !callbacks[st.Event] {
			return fmt.Errorf("%w: step %d: unknown event %q", ErrInvalidScript, i+1, st.Event)
		}
		if st.Screen == "" {
			return fmt.Errorf("%w: step %d: screen is required", ErrInvalidScript, i+1)
		}
		if st.Finishing && st.Event != CallbackStopped {
			return fmt.Errorf("%w: step %d: finishing only applies to stopped", ErrInvalidScript, i+1)
		}
	}
	return nil
}
