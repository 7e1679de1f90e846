package host

import (
	"errors"

	"github.com/bft-labs/applifecycle/pkg/lifecycle"
	"github.com/bft-labs/applifecycle/pkg/log"
)

var (
	// ErrNilHost is returned by NewBridge when no host is given.
	ErrNilHost = errors.New("host: host is nil")

	// ErrNilTransitions is returned by NewBridge when no coordinator is given.
	ErrNilTransitions = errors.New("host: transitions target is nil")
)

// Screen is a unit of UI the host drives through its lifecycle.
type Screen interface {
	// Finishing reports whether the screen is exiting for good rather than
	// moving to the background.
	Finishing() bool
}

// Callbacks receives raw lifecycle callbacks from the host.
type Callbacks interface {
	ScreenCreated(s Screen)
	ScreenStarted(s Screen)
	ScreenResumed(s Screen)
	ScreenPaused(s Screen)
	ScreenStopped(s Screen)
	ScreenSaveState(s Screen)
	ScreenDestroyed(s Screen)
}

// Host is the runtime that emits screen callbacks.
type Host interface {
	Register(cb Callbacks)
	Unregister(cb Callbacks)
}

// Transitions is the set of coordinator operations the bridge drives.
// *lifecycle.Coordinator satisfies it.
type Transitions interface {
	Created(origin lifecycle.ContextID) error
	Started(origin lifecycle.ContextID) error
	Resumed(origin lifecycle.ContextID) error
	Paused(origin lifecycle.ContextID) error
	Stopped(origin lifecycle.ContextID) error
	Finished(origin lifecycle.ContextID) error
}

// Identifier derives the context identity of a screen.
type Identifier func(s Screen) lifecycle.ContextID

// Option configures a Bridge.
type Option func(*Bridge)

// WithIdentifier overrides how screens map to context identities.
// The default is lifecycle.TypeIdentity, so screens of one type share an identity.
func WithIdentifier(id Identifier) Option {
	return func(b *Bridge) {
		if id != nil {
			b.identify = id
		}
	}
}

// WithLogger sets the logger used to report rejected callbacks.
func WithLogger(logger log.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Bridge implements Callbacks by forwarding to a Transitions target.
type Bridge struct {
	host     Host
	target   Transitions
	identify Identifier
	logger   log.Logger
}

// NewBridge creates a bridge between h and target. Call Initialize to start
// receiving callbacks.
func NewBridge(h Host, target Transitions, opts ...Option) (*Bridge, error) {
	if h == nil {
		return nil, ErrNilHost
	}
	if target == nil {
		return nil, ErrNilTransitions
	}

	b := &Bridge{
		host:     h,
		target:   target,
		identify: typeIdentifier,
		logger:   log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Initialize registers the bridge with the host.
func (b *Bridge) Initialize() {
	b.host.Register(b)
}

// Dispose unregisters the bridge from the host.
func (b *Bridge) Dispose() {
	b.host.Unregister(b)
}

func (b *Bridge) ScreenCreated(s Screen) { b.forward("created", s, b.target.Created) }
func (b *Bridge) ScreenStarted(s Screen) { b.forward("started", s, b.target.Started) }
func (b *Bridge) ScreenResumed(s Screen) { b.forward("resumed", s, b.target.Resumed) }
func (b *Bridge) ScreenPaused(s Screen)  { b.forward("paused", s, b.target.Paused) }

// ScreenStopped forwards Stopped, then Finished when the screen is finishing.
func (b *Bridge) ScreenStopped(s Screen) {
	b.forward("stopped", s, b.target.Stopped)
	if s != nil && s.Finishing() {
		b.forward("finished", s, b.target.Finished)
	}
}

// ScreenSaveState is ignored.
func (b *Bridge) ScreenSaveState(Screen) {}

// ScreenDestroyed is ignored: exit is detected in ScreenStopped.
func (b *Bridge) ScreenDestroyed(Screen) {}

func (b *Bridge) forward(callback string, s Screen, fn func(lifecycle.ContextID) error) {
	var id lifecycle.ContextID
	if s != nil {
		id = b.identify(s)
	}
	if err := fn(id); err != nil {
		b.logger.Error("host callback rejected",
			log.String("callback", callback),
			log.String("context", lifecycle.FormatContext(id)),
			log.Err(err),
		)
	}
}

func typeIdentifier(s Screen) lifecycle.ContextID {
	return lifecycle.TypeIdentity(s)
}

var _ Callbacks = (*Bridge)(nil)
