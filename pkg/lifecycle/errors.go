package lifecycle

import "errors"

// Errors returned by the coordinator and registry.
// Check them with errors.Is; returned values may wrap them with detail.
var (
	// ErrInvalidArgument is returned for an absent or unusable context identity
	// or listener.
	ErrInvalidArgument = errors.New("lifecycle: invalid argument")

	// ErrDuplicateListener is returned when a listener is added twice.
	ErrDuplicateListener = errors.New("lifecycle: listener already added")

	// ErrListenerNotFound is returned when removing a listener that is not registered.
	ErrListenerNotFound = errors.New("lifecycle: listener not found")
)
