package lifecycle

// Listener is any value implementing at least one of the capability
// interfaces below. Listeners are compared with ==, so pointers are the usual
// choice.
type Listener any

// CreatedListener is notified when the first context of a session is created.
type CreatedListener interface {
	OnCreated(origin ContextID)
}

// StartedListener is notified when the active context is started, either for
// the first time or when it comes back from the background.
type StartedListener interface {
	OnStarted(origin ContextID)
}

// ResumedListener is notified when the active context is resumed.
type ResumedListener interface {
	OnResumed(origin ContextID)
}

// PausedListener is notified when the active context is paused.
type PausedListener interface {
	OnPaused(origin ContextID)
}

// StoppedListener is notified when the active context moves to the background.
type StoppedListener interface {
	OnStopped(origin ContextID)
}

// FinishedListener is notified when the last context exits.
type FinishedListener interface {
	OnFinished(origin ContextID)
}

// EventListener receives every lifecycle event.
type EventListener interface {
	CreatedListener
	StartedListener
	ResumedListener
	PausedListener
	StoppedListener
	FinishedListener
}

// PersistentListener marks a listener that survives Remove and the purge that
// follows Finished. Only Coordinator.Dispose drops it.
type PersistentListener interface {
	Persistent() bool
}

// BaseListener implements EventListener with no-op methods.
// Embed it and override the events you care about.
type BaseListener struct{}

func (BaseListener) OnCreated(ContextID)  {}
func (BaseListener) OnStarted(ContextID)  {}
func (BaseListener) OnResumed(ContextID)  {}
func (BaseListener) OnPaused(ContextID)   {}
func (BaseListener) OnStopped(ContextID)  {}
func (BaseListener) OnFinished(ContextID) {}

// PersistentBase is a BaseListener that is never purged.
type PersistentBase struct {
	BaseListener
}

// Persistent always returns true.
func (PersistentBase) Persistent() bool { return true }

// ListenerFuncs adapts plain functions into an EventListener. Nil fields are
// skipped. Register it by pointer.
type ListenerFuncs struct {
	Created  func(origin ContextID)
	Started  func(origin ContextID)
	Resumed  func(origin ContextID)
	Paused   func(origin ContextID)
	Stopped  func(origin ContextID)
	Finished func(origin ContextID)

	// Keep exempts the listener from removal.
	Keep bool
}

func (f *ListenerFuncs) OnCreated(origin ContextID)  { call(f.Created, origin) }
func (f *ListenerFuncs) OnStarted(origin ContextID)  { call(f.Started, origin) }
func (f *ListenerFuncs) OnResumed(origin ContextID)  { call(f.Resumed, origin) }
func (f *ListenerFuncs) OnPaused(origin ContextID)   { call(f.Paused, origin) }
func (f *ListenerFuncs) OnStopped(origin ContextID)  { call(f.Stopped, origin) }
func (f *ListenerFuncs) OnFinished(origin ContextID) { call(f.Finished, origin) }

// Persistent reports the Keep field.
func (f *ListenerFuncs) Persistent() bool { return f.Keep }

func call(fn func(ContextID), origin ContextID) {
	if fn != nil {
		fn(origin)
	}
}

// dispatch invokes the callback matching kind if l implements it.
func dispatch(l Listener, kind EventKind, origin ContextID) {
	switch kind {
	case EventCreated:
		if c, ok := l.(CreatedListener); ok {
			c.OnCreated(origin)
		}
	case EventStarted:
		if c, ok := l.(StartedListener); ok {
			c.OnStarted(origin)
		}
	case EventResumed:
		if c, ok := l.(ResumedListener); ok {
			c.OnResumed(origin)
		}
	case EventPaused:
		if c, ok := l.(PausedListener); ok {
			c.OnPaused(origin)
		}
	case EventStopped:
		if c, ok := l.(StoppedListener); ok {
			c.OnStopped(origin)
		}
	case EventFinished:
		if c, ok := l.(FinishedListener); ok {
			c.OnFinished(origin)
		}
	}
}

// hasCapability reports whether l implements any callback.
func hasCapability(l Listener) bool {
	switch l.(type) {
	case CreatedListener, StartedListener, ResumedListener,
		PausedListener, StoppedListener, FinishedListener:
		return true
	default:
		return false
	}
}

func isPersistent(l Listener) bool {
	p, ok := l.(PersistentListener)
	return ok && p.Persistent()
}
