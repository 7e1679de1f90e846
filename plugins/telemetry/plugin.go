// Package telemetry provides a persistent listener that aggregates lifecycle
// statistics across sessions and logs a summary when each session finishes.
package telemetry

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/applifecycle/pkg/lifecycle"
	"github.com/bft-labs/applifecycle/pkg/log"
)

// Stats is a snapshot of collected telemetry.
type Stats struct {
	// Session is the identifier of the session in progress, or "".
	Session string

	// Sessions counts sessions started since the listener was created.
	Sessions int

	// Completed counts sessions that reached Finished.
	Completed int

	// Counts holds notifications received per event kind, across sessions.
	Counts map[lifecycle.EventKind]int

	// Foreground is the time spent between Resumed and Paused in the
	// current session, including an open foreground interval.
	Foreground time.Duration

	// TotalForeground accumulates Foreground over every session.
	TotalForeground time.Duration

	// InForeground reports whether the last event was Resumed.
	InForeground bool
}

// Option configures a Listener.
type Option func(*Listener)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Listener) {
		if now != nil {
			l.now = now
		}
	}
}

// WithSessionIDs overrides how session identifiers are generated.
func WithSessionIDs(next func() string) Option {
	return func(l *Listener) {
		if next != nil {
			l.nextID = next
		}
	}
}

// Listener collects Stats. It is safe to call Snapshot from other goroutines.
type Listener struct {
	mu     sync.Mutex
	logger log.Logger
	now    func() time.Time
	nextID func() string

	session      string
	sessionStart time.Time
	resumedAt    time.Time
	inForeground bool
	foreground   time.Duration
	resumes      int
	total        time.Duration
	sessions     int
	completed    int
	counts       map[lifecycle.EventKind]int
}

// New creates a telemetry listener logging summaries to logger.
func New(logger log.Logger, opts ...Option) *Listener {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	l := &Listener{
		logger: logger,
		now:    time.Now,
		nextID: uuid.NewString,
		counts: make(map[lifecycle.EventKind]int),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Persistent keeps telemetry registered across sessions.
func (l *Listener) Persistent() bool { return true }

func (l *Listener) OnCreated(origin lifecycle.ContextID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[lifecycle.EventCreated]++
	l.sessions++
	l.session = l.nextID()
	l.sessionStart = l.now()
	l.foreground = 0
	l.resumes = 0
	l.inForeground = false

	l.logger.Debug("session started",
		log.String("session", l.session),
		log.String("context", lifecycle.FormatContext(origin)),
	)
}

func (l *Listener) OnStarted(lifecycle.ContextID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[lifecycle.EventStarted]++
}

func (l *Listener) OnResumed(lifecycle.ContextID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[lifecycle.EventResumed]++
	l.resumes++
	l.resumedAt = l.now()
	l.inForeground = true
}

func (l *Listener) OnPaused(lifecycle.ContextID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[lifecycle.EventPaused]++
	l.closeForeground()
}

func (l *Listener) OnStopped(lifecycle.ContextID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[lifecycle.EventStopped]++
}

func (l *Listener) OnFinished(origin lifecycle.ContextID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[lifecycle.EventFinished]++
	l.closeForeground()
	l.completed++
	l.total += l.foreground

	l.logger.Info("session summary",
		log.String("session", l.session),
		log.String("context", lifecycle.FormatContext(origin)),
		log.Duration("duration", l.now().Sub(l.sessionStart)),
		log.Duration("foreground", l.foreground),
		log.Int("resumes", l.resumes),
		log.Int("sessions", l.sessions),
	)

	l.session = ""
	l.foreground = 0
	l.resumes = 0
}

// Snapshot returns the current statistics.
func (l *Listener) Snapshot() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	fg := l.foreground
	if l.inForeground {
		fg += l.now().Sub(l.resumedAt)
	}

	counts := make(map[lifecycle.EventKind]int, len(l.counts))
	for k, v := range l.counts {
		counts[k] = v
	}

	return Stats{
		Session:         l.session,
		Sessions:        l.sessions,
		Completed:       l.completed,
		Counts:          counts,
		Foreground:      fg,
		TotalForeground: l.total + fg,
		InForeground:    l.inForeground,
	}
}

// closeForeground must be called with mu held.
func (l *Listener) closeForeground() {
	if !l.inForeground {
		return
	}
	l.foreground += l.now().Sub(l.resumedAt)
	l.inForeground = false
}

var (
	_ lifecycle.EventListener      = (*Listener)(nil)
	_ lifecycle.PersistentListener = (*Listener)(nil)
)
