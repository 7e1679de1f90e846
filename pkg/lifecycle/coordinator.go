package lifecycle

import (
	"fmt"

	"github.com/bft-labs/applifecycle/pkg/log"
)

// State is a snapshot of the coordinator's bookkeeping.
type State struct {
	// Active is the context currently owning the session, nil when idle.
	Active ContextID

	// LastEvent is the last accepted event, EventNone when idle.
	LastEvent EventKind
}

// Idle reports whether no session is in progress.
func (s State) Idle() bool {
	return s.LastEvent == EventNone
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for transition tracing.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegistry sets the registry used to hold listeners.
// If not provided, an empty registry is created.
func WithRegistry(r *Registry) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.registry = r
		}
	}
}

// Coordinator validates transitions reported by the host and notifies
// listeners. Use NewCoordinator to create one.
type Coordinator struct {
	registry *Registry
	logger   log.Logger

	active ContextID
	last   EventKind
}

// NewCoordinator creates a coordinator in the idle state.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		registry: NewRegistry(),
		logger:   log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current active context and last accepted event.
func (c *Coordinator) State() State {
	return State{Active: c.active, LastEvent: c.last}
}

// Registry returns the registry holding the coordinator's listeners.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// Add registers a listener. See Registry.Add.
func (c *Coordinator) Add(l Listener) error {
	return c.registry.Add(l)
}

// Remove unregisters a listener. See Registry.Remove.
func (c *Coordinator) Remove(l Listener) error {
	return c.registry.Remove(l)
}

// Created reports that origin was created. Accepted only when no session is
// in progress; origin becomes the active context.
func (c *Coordinator) Created(origin ContextID) error {
	if !c.admit(EventCreated, origin) {
		return checkContext(origin)
	}

	c.active = origin
	c.registry.Notify(EventCreated, origin)
	c.accept(EventCreated, origin)
	return nil
}

// Started reports that origin was started. Accepted after Created, Paused or
// Stopped.
//
// When origin is not the active context, the report belongs to a handoff: the
// incoming context becomes active without a Started notification, so the
// Resumed that follows is attributed to it.
func (c *Coordinator) Started(origin ContextID) error {
	if !c.admit(EventStarted, origin) {
		return checkContext(origin)
	}

	if origin == c.active {
		c.registry.Notify(EventStarted, origin)
	} else {
		c.logger.Debug("active context handed off",
			log.String("from", FormatContext(c.active)),
			log.String("to", FormatContext(origin)),
		)
		c.active = origin
	}
	c.accept(EventStarted, origin)
	return nil
}

// Resumed reports that origin was resumed. Accepted after Started or Paused,
// and only from the active context.
func (c *Coordinator) Resumed(origin ContextID) error {
	return c.forward(EventResumed, origin)
}

// Paused reports that origin was paused. Accepted after Resumed, and only
// from the active context.
func (c *Coordinator) Paused(origin ContextID) error {
	return c.forward(EventPaused, origin)
}

// Stopped reports that origin moved to the background. Accepted after Paused,
// and only from the active context.
func (c *Coordinator) Stopped(origin ContextID) error {
	return c.forward(EventStopped, origin)
}

// Finished reports that origin exited for good. Accepted after Stopped, and
// only from the active context. Listeners are notified, then the coordinator
// returns to the idle state and every non-persistent listener is removed.
func (c *Coordinator) Finished(origin ContextID) error {
	if err := c.forward(EventFinished, origin); err != nil {
		return err
	}
	if c.last != EventFinished {
		return nil
	}

	c.active = nil
	c.last = EventNone
	removed := c.registry.purge()
	c.logger.Info("session finished",
		log.String("context", FormatContext(origin)),
		log.Int("listeners_removed", removed),
		log.Int("listeners_kept", c.registry.Len()),
	)
	return nil
}

// Handle dispatches kind to the matching transition method.
func (c *Coordinator) Handle(kind EventKind, origin ContextID) error {
	switch kind {
	case EventCreated:
		return c.Created(origin)
	case EventStarted:
		return c.Started(origin)
	case EventResumed:
		return c.Resumed(origin)
	case EventPaused:
		return c.Paused(origin)
	case EventStopped:
		return c.Stopped(origin)
	case EventFinished:
		return c.Finished(origin)
	default:
		return fmt.Errorf("%w: cannot handle event %s", ErrInvalidArgument, kind)
	}
}

// Dispose removes every listener, persistent ones included, and resets the
// coordinator to the idle state.
func (c *Coordinator) Dispose() {
	c.registry.reset()
	c.active = nil
	c.last = EventNone
	c.logger.Info("coordinator disposed")
}

// forward handles the events that are only meaningful for the active context.
func (c *Coordinator) forward(kind EventKind, origin ContextID) error {
	if !c.admit(kind, origin) {
		return checkContext(origin)
	}
	if origin != c.active {
		c.ignore(kind, origin, "origin is not the active context")
		return nil
	}

	c.registry.Notify(kind, origin)
	c.accept(kind, origin)
	return nil
}

// admit reports whether origin is valid and kind may follow the last event.
func (c *Coordinator) admit(kind EventKind, origin ContextID) bool {
	if checkContext(origin) != nil {
		return false
	}
	if !kind.CanFollow(c.last) {
		c.ignore(kind, origin, "not allowed after "+c.last.String())
		return false
	}
	return true
}

func (c *Coordinator) accept(kind EventKind, origin ContextID) {
	prev := c.last
	c.last = kind
	c.logger.Info("transition",
		log.String("from", prev.String()),
		log.String("to", kind.String()),
		log.String("context", FormatContext(origin)),
	)
}

func (c *Coordinator) ignore(kind EventKind, origin ContextID, reason string) {
	c.logger.Debug("transition ignored",
		log.String("event", kind.String()),
		log.String("context", FormatContext(origin)),
		log.String("reason", reason),
	)
}
