// Package host forwards raw lifecycle callbacks from a UI runtime to a
// lifecycle coordinator.
//
// The runtime reports per-screen callbacks through [Callbacks]. A [Bridge]
// derives each screen's context identity, forwards the callback, and turns a
// stop of a finishing screen into Stopped followed by Finished. Save-state and
// destroy callbacks carry no lifecycle meaning and are dropped.
//
//	b, err := host.NewBridge(runtime, coordinator, host.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	b.Initialize()
//	defer b.Dispose()
package host
