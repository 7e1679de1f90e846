// Package applifecycle collapses the per-screen lifecycle callbacks of a UI
// runtime into one application-level lifecycle with exactly one active
// context at a time.
//
// Example usage:
//
//	c := applifecycle.NewCoordinator()
//	_ = c.Add(&lifecycle.ListenerFuncs{
//	    Resumed: func(origin applifecycle.ContextID) { ... },
//	})
//	_ = c.Created("main")
//	_ = c.Started("main")
//	_ = c.Resumed("main")
package applifecycle

import (
	"github.com/bft-labs/applifecycle/pkg/lifecycle"
	"github.com/bft-labs/applifecycle/pkg/log"
	"github.com/bft-labs/applifecycle/pkg/state"
)

// Version is the version of the applifecycle module set.
const Version = "1.0.0"

// Coordinator is the application-level lifecycle state machine.
type Coordinator = lifecycle.Coordinator

// Listener is anything implementing at least one lifecycle callback.
type Listener = lifecycle.Listener

// ContextID identifies a UI execution context.
type ContextID = lifecycle.ContextID

// EventKind enumerates lifecycle events.
type EventKind = lifecycle.EventKind

// State is a snapshot of coordinator state.
type State = lifecycle.State

// NewCoordinator creates an idle Coordinator.
func NewCoordinator(opts ...lifecycle.Option) *Coordinator {
	return lifecycle.NewCoordinator(opts...)
}

// ModuleVersions returns the version of every sub-module.
func ModuleVersions() map[string]string {
	return map[string]string{
		"applifecycle": Version,
		"lifecycle":    lifecycle.Version,
		"log":          log.Version,
		"state":        state.Version,
	}
}
