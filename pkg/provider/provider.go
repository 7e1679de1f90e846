// Package provider holds one process-wide Coordinator for applications that
// want a static accessor at their composition root.
//
// Library code should accept a *lifecycle.Coordinator explicitly; this
// package only exists for wiring:
//
//	c, err := provider.Initialize(lifecycle.WithLogger(logger))
//	...
//	c, err = provider.Coordinator()
package provider

import (
	"errors"
	"sync"

	"github.com/bft-labs/applifecycle/pkg/lifecycle"
)

var (
	// ErrAlreadyInitialized is returned by Initialize when a coordinator exists.
	ErrAlreadyInitialized = errors.New("provider: already initialized")

	// ErrNotInitialized is returned when no coordinator has been initialized.
	ErrNotInitialized = errors.New("provider: not initialized")
)

var (
	mu      sync.Mutex
	current *lifecycle.Coordinator
)

// Initialize creates the process-wide coordinator.
func Initialize(opts ...lifecycle.Option) (*lifecycle.Coordinator, error) {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return nil, ErrAlreadyInitialized
	}
	current = lifecycle.NewCoordinator(opts...)
	return current, nil
}

// Coordinator returns the process-wide coordinator.
func Coordinator() (*lifecycle.Coordinator, error) {
	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		return nil, ErrNotInitialized
	}
	return current, nil
}

// MustCoordinator is like Coordinator but panics when not initialized.
func MustCoordinator() *lifecycle.Coordinator {
	c, err := Coordinator()
	if err != nil {
		panic(err)
	}
	return c
}

// Dispose disposes the process-wide coordinator and clears the holder so
// Initialize can be called again.
func Dispose() error {
	mu.Lock()
	c := current
	current = nil
	mu.Unlock()

	if c == nil {
		return ErrNotInitialized
	}
	c.Dispose()
	return nil
}
