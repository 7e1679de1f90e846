package lifecycle_test

import (
	"fmt"

	"github.com/bft-labs/applifecycle/pkg/lifecycle"
)

// foregroundTracker prints when the app enters or leaves the foreground.
type foregroundTracker struct {
	lifecycle.BaseListener
}

func (foregroundTracker) OnResumed(origin lifecycle.ContextID) {
	fmt.Println("foreground:", origin)
}

func (foregroundTracker) OnPaused(origin lifecycle.ContextID) {
	fmt.Println("background:", origin)
}

func ExampleCoordinator() {
	c := lifecycle.NewCoordinator()
	_ = c.Add(&foregroundTracker{})

	_ = c.Created("main")
	_ = c.Started("main")
	_ = c.Resumed("main")

	// main opens settings: settings takes over without a second Started.
	_ = c.Paused("main")
	_ = c.Created("settings")
	_ = c.Started("settings")
	_ = c.Resumed("settings")
	_ = c.Stopped("main")

	fmt.Println("active:", c.State().Active)

	// Output:
	// foreground: main
	// background: main
	// foreground: settings
	// active: settings
}

func ExampleListenerFuncs() {
	c := lifecycle.NewCoordinator()
	_ = c.Add(&lifecycle.ListenerFuncs{
		Keep:     true,
		Finished: func(origin lifecycle.ContextID) { fmt.Println("finished:", origin) },
	})

	for _, kind := range lifecycle.EventKinds {
		_ = c.Handle(kind, "main")
	}

	fmt.Println("listeners:", c.Registry().Len())

	// Output:
	// finished: main
	// listeners: 1
}
