package lifecycle

import (
	"fmt"
	"reflect"
	"strings"
)

// EventKind identifies a lifecycle transition.
type EventKind int

const (
	// EventNone means no event has been accepted since the last reset.
	EventNone EventKind = iota
	EventCreated
	EventStarted
	EventResumed
	EventPaused
	EventStopped
	EventFinished
)

// EventKinds lists every transition kind in declaration order.
var EventKinds = []EventKind{
	EventCreated,
	EventStarted,
	EventResumed,
	EventPaused,
	EventStopped,
	EventFinished,
}

// String returns a human-readable representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventCreated:
		return "Created"
	case EventStarted:
		return "Started"
	case EventResumed:
		return "Resumed"
	case EventPaused:
		return "Paused"
	case EventStopped:
		return "Stopped"
	case EventFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// CanFollow reports whether k may be accepted when prev is the last accepted event.
func (k EventKind) CanFollow(prev EventKind) bool {
	switch k {
	case EventCreated:
		return prev == EventNone
	case EventStarted:
		return prev == EventCreated || prev == EventPaused || prev == EventStopped
	case EventResumed:
		return prev == EventStarted || prev == EventPaused
	case EventPaused:
		return prev == EventResumed
	case EventStopped:
		return prev == EventPaused
	case EventFinished:
		return prev == EventStopped
	default:
		return false
	}
}

// MarshalText encodes the kind as its lower-case name.
func (k EventKind) MarshalText() ([]byte, error) {
	if k < EventNone || k > EventFinished {
		return nil, fmt.Errorf("%w: event kind %d", ErrInvalidArgument, int(k))
	}
	return []byte(strings.ToLower(k.String())), nil
}

// UnmarshalText decodes a kind previously encoded with MarshalText.
func (k *EventKind) UnmarshalText(text []byte) error {
	parsed, err := ParseEventKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseEventKind parses an event name case-insensitively.
// The empty string and "none" both parse to EventNone.
func ParseEventKind(s string) (EventKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return EventNone, nil
	}
	for k := EventNone; k <= EventFinished; k++ {
		if strings.ToLower(k.String()) == name {
			return k, nil
		}
	}
	return EventNone, fmt.Errorf("%w: unknown event %q", ErrInvalidArgument, s)
}

// ContextID identifies a logical context. Two identities denote the same
// context when they compare equal with ==, so values must be comparable.
// A nil ContextID means "no context".
type ContextID any

// TypeIdentity returns the dynamic type of v as a ContextID. Every value of
// the same type maps to the same identity, so re-creating a context of the
// same kind is treated as continuity.
func TypeIdentity(v any) ContextID {
	if v == nil {
		return nil
	}
	return reflect.TypeOf(v)
}

// FormatContext renders an identity for logs and output.
func FormatContext(id ContextID) string {
	if id == nil {
		return "<none>"
	}
	if t, ok := id.(reflect.Type); ok {
		return t.String()
	}
	return fmt.Sprint(id)
}

// checkContext validates a caller-supplied identity.
func checkContext(id ContextID) error {
	if id == nil {
		return fmt.Errorf("%w: context identity is nil", ErrInvalidArgument)
	}
	if !reflect.ValueOf(id).Comparable() {
		return fmt.Errorf("%w: context identity of type %T is not comparable", ErrInvalidArgument, id)
	}
	return nil
}
