// Package marker provides a persistent listener that stores the last
// notified lifecycle event through a state.Repository.
//
// Each notification overwrites the marker, so after a crash the stored event
// shows where the previous session stopped. The listener is persistent and
// survives the purge that follows Finished.
package marker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/applifecycle/pkg/lifecycle"
	"github.com/bft-labs/applifecycle/pkg/log"
	"github.com/bft-labs/applifecycle/pkg/state"
)

// Config holds options for the marker listener.
type Config struct {
	// SaveTimeout bounds each write to the repository.
	// Default: 2 seconds
	SaveTimeout time.Duration

	// Clock returns the current time. Default: time.Now
	Clock func() time.Time

	// NewSession returns a fresh session identifier. Default: uuid.NewString
	NewSession func() string

	// Logger receives save failures. Default: no-op
	Logger log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SaveTimeout: 2 * time.Second,
		Clock:       time.Now,
		NewSession:  uuid.NewString,
		Logger:      log.NewNoopLogger(),
	}
}

// Listener writes a state.Marker on every lifecycle event.
type Listener struct {
	repo   state.Repository
	cfg    Config
	logger log.Logger

	session string
	seq     uint64
	lastErr error
}

// New creates a marker listener writing to repo. Zero fields in cfg take
// their DefaultConfig values.
func New(repo state.Repository, cfg Config) *Listener {
	def := DefaultConfig()
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = def.SaveTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = def.Clock
	}
	if cfg.NewSession == nil {
		cfg.NewSession = def.NewSession
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	return &Listener{repo: repo, cfg: cfg, logger: cfg.Logger}
}

// Persistent keeps the listener registered across sessions.
func (l *Listener) Persistent() bool { return true }

// OnCreated starts a new session and records Created.
func (l *Listener) OnCreated(origin lifecycle.ContextID) {
	l.session = l.cfg.NewSession()
	l.seq = 0
	l.save(lifecycle.EventCreated, origin)
}

func (l *Listener) OnStarted(origin lifecycle.ContextID) { l.save(lifecycle.EventStarted, origin) }
func (l *Listener) OnResumed(origin lifecycle.ContextID) { l.save(lifecycle.EventResumed, origin) }
func (l *Listener) OnPaused(origin lifecycle.ContextID)  { l.save(lifecycle.EventPaused, origin) }
func (l *Listener) OnStopped(origin lifecycle.ContextID) { l.save(lifecycle.EventStopped, origin) }

// OnFinished records Finished and closes the session.
func (l *Listener) OnFinished(origin lifecycle.ContextID) {
	l.save(lifecycle.EventFinished, origin)
	l.session = ""
}

// Session returns the identifier of the session in progress, or "".
func (l *Listener) Session() string {
	return l.session
}

// Err returns the error from the most recent save, if any.
func (l *Listener) Err() error {
	return l.lastErr
}

func (l *Listener) save(kind lifecycle.EventKind, origin lifecycle.ContextID) {
	l.seq++
	m := state.Marker{
		Event:    kind,
		Context:  lifecycle.FormatContext(origin),
		Session:  l.session,
		Sequence: l.seq,
		At:       l.cfg.Clock().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.cfg.SaveTimeout)
	defer cancel()

	l.lastErr = l.repo.Save(ctx, m)
	if l.lastErr != nil {
		l.logger.Error("failed to save lifecycle marker",
			log.String("event", kind.String()),
			log.String("session", l.session),
			log.Err(l.lastErr),
		)
	}
}

var (
	_ lifecycle.EventListener      = (*Listener)(nil)
	_ lifecycle.PersistentListener = (*Listener)(nil)
)
