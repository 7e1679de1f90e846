// Package replay drives a lifecycle coordinator from a script, playing the
// part of the UI runtime.
package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/applifecycle/internal/script"
	"github.com/bft-labs/applifecycle/pkg/host"
	"github.com/bft-labs/applifecycle/pkg/lifecycle"
	"github.com/bft-labs/applifecycle/pkg/log"
)

// Notification is one event delivered to listeners during a replay.
type Notification struct {
	// Step is the 1-based script step that triggered the event.
	Step    int
	Event   lifecycle.EventKind
	Context string
}

func (n Notification) String() string {
	return fmt.Sprintf("%s(%s)", n.Event, n.Context)
}

// Result summarizes a replay.
type Result struct {
	Script        string
	Steps         int
	Notifications []Notification
	Final         lifecycle.State
}

// Options configures Run.
type Options struct {
	// Coordinator receives the transitions. A fresh one is created when nil.
	Coordinator *lifecycle.Coordinator

	// Out receives one line per notification when set.
	Out io.Writer

	// Logger receives bridge diagnostics.
	Logger log.Logger
}

// Run plays every step of s through a host bridge and returns what listeners saw.
func Run(s script.Script, opts Options) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	c := opts.Coordinator
	if c == nil {
		c = lifecycle.NewCoordinator(lifecycle.WithLogger(opts.Logger))
	}

	h := newScriptHost()
	b, err := host.NewBridge(h, c,
		host.WithIdentifier(screenName),
		host.WithLogger(opts.Logger),
	)
	if err != nil {
		return Result{}, err
	}
	b.Initialize()
	defer b.Dispose()

	res := Result{Script: s.Name, Steps: len(s.Steps)}
	step := 0
	rec := recorder(func(kind lifecycle.EventKind, origin lifecycle.ContextID) {
		n := Notification{Step: step, Event: kind, Context: lifecycle.FormatContext(origin)}
		res.Notifications = append(res.Notifications, n)
		if opts.Out != nil {
			fmt.Fprintf(opts.Out, "%3d  %-8s %s\n", n.Step, n.Event, n.Context)
		}
	})
	if err := c.Add(rec); err != nil {
		return Result{}, err
	}
	defer func() {
		rec.Keep = false
		_ = c.Remove(rec)
	}()

	for i, st := range s.Steps {
		step = i + 1
		if err := h.play(st); err != nil {
			return res, fmt.Errorf("step %d (%s): %w", step, st, err)
		}
	}

	res.Final = c.State()
	return res, nil
}

// recorder builds a listener that stays registered across sessions until
// the replay ends.
func recorder(fn func(lifecycle.EventKind, lifecycle.ContextID)) *lifecycle.ListenerFuncs {
	on := func(kind lifecycle.EventKind) func(lifecycle.ContextID) {
		return func(origin lifecycle.ContextID) { fn(kind, origin) }
	}
	return &lifecycle.ListenerFuncs{
		Keep:     true,
		Created:  on(lifecycle.EventCreated),
		Started:  on(lifecycle.EventStarted),
		Resumed:  on(lifecycle.EventResumed),
		Paused:   on(lifecycle.EventPaused),
		Stopped:  on(lifecycle.EventStopped),
		Finished: on(lifecycle.EventFinished),
	}
}

var errNoCallbacks = errors.New("no callbacks registered")

// screen is a scripted UI unit identified by name.
type screen struct {
	name      string
	finishing bool
}

func (s *screen) Finishing() bool { return s.finishing }

func screenName(s host.Screen) lifecycle.ContextID {
	if sc, ok := s.(*screen); ok {
		return sc.name
	}
	return lifecycle.TypeIdentity(s)
}

// scriptHost implements host.Host by replaying script steps.
type scriptHost struct {
	callbacks []host.Callbacks
	screens   map[string]*screen
}

func newScriptHost() *scriptHost {
	return &scriptHost{screens: make(map[string]*screen)}
}

func (h *scriptHost) Register(cb host.Callbacks) {
	h.callbacks = append(h.callbacks, cb)
}

func (h *scriptHost) Unregister(cb host.Callbacks) {
	for i, cur := range h.callbacks {
		if cur == cb {
			h.callbacks = append(h.callbacks[:i], h.callbacks[i+1:]...)
			return
		}
	}
}

func (h *scriptHost) play(st script.Step) error {
	if len(h.callbacks) == 0 {
		return errNoCallbacks
	}

	sc, ok := h.screens[st.Screen]
	if !ok {
		sc = &screen{name: st.Screen}
		h.screens[st.Screen] = sc
	}
	sc.finishing = st.Finishing

	for _, cb := range h.callbacks {
		switch st.Event {
		case script.CallbackCreated:
			cb.ScreenCreated(sc)
		case script.CallbackStarted:
			cb.ScreenStarted(sc)
		case script.CallbackResumed:
			cb.ScreenResumed(sc)
		case script.CallbackPaused:
			cb.ScreenPaused(sc)
		case script.CallbackStopped:
			cb.ScreenStopped(sc)
		case script.CallbackSaveState:
			cb.ScreenSaveState(sc)
		case script.CallbackDestroyed:
			cb.ScreenDestroyed(sc)
			delete(h.screens, st.Screen)
		default:
			return fmt.Errorf("unknown callback %q", st.Event)
		}
	}
	return nil
}
