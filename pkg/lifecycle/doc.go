// Package lifecycle coordinates the lifecycle transitions of a single active
// context and fans validated events out to registered listeners.
//
// A host (typically a UI runtime) reports raw transitions for whichever
// context it is driving. The [Coordinator] checks each report against the
// previously accepted event, tracks which context is active, and notifies
// listeners through a [Registry].
//
// # Usage
//
//	c := lifecycle.NewCoordinator(lifecycle.WithLogger(logger))
//
//	_ = c.Add(&lifecycle.ListenerFuncs{
//	    Resumed: func(origin lifecycle.ContextID) { ... },
//	    Paused:  func(origin lifecycle.ContextID) { ... },
//	})
//
//	_ = c.Created("main")
//	_ = c.Started("main")
//	_ = c.Resumed("main")
//
// # Transitions
//
// Each event is accepted only after specific predecessors:
//   - Created: no prior event
//   - Started: Created, Paused, Stopped
//   - Resumed: Started, Paused
//   - Paused: Resumed
//   - Stopped: Paused
//   - Finished: Stopped
//
// A report that arrives out of order is ignored rather than rejected, since
// hosts interleave two contexts while handing off between them. Finished
// resets the coordinator and drops every listener that is not a
// [PersistentListener], so the machine can run any number of sessions.
//
// # Concurrency
//
// Coordinator and Registry expect a single goroutine of control and do no
// locking. Listeners may add or remove listeners from inside a callback but
// must not report transitions.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package lifecycle
