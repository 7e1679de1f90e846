package state

import (
	"time"

	"github.com/bft-labs/applifecycle/pkg/lifecycle"
)

// Marker records the last lifecycle event that was notified.
type Marker struct {
	// Event is the last notified event; EventNone if nothing was recorded.
	Event lifecycle.EventKind `json:"event"`

	// Context is the formatted identity of the context that triggered Event.
	Context string `json:"context,omitempty"`

	// Session identifies the create-to-finish cycle Event belongs to.
	Session string `json:"session,omitempty"`

	// Sequence counts markers written during the session.
	Sequence uint64 `json:"sequence"`

	// At is when Event was observed.
	At time.Time `json:"at"`
}

// Empty reports whether nothing has been recorded.
func (m Marker) Empty() bool {
	return m.Event == lifecycle.EventNone
}

// Clean reports whether the recorded session ended with Finished, or nothing
// was ever recorded.
func (m Marker) Clean() bool {
	return m.Empty() || m.Event == lifecycle.EventFinished
}
