// Package state persists the last-event marker: the most recent lifecycle
// event a process observed, so a restarted process can tell whether the
// previous session ended cleanly.
//
// # Usage
//
//	repo := state.NewFileRepository("/var/lib/myapp")
//
//	m, err := repo.Load(ctx)
//	if err != nil {
//	    return err
//	}
//	if !m.Clean() {
//	    // previous session did not reach Finished
//	}
//
// The marker is written atomically (temp file, then rename).
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package state
