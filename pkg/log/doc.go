// Package log is the structured logging port used by the lifecycle packages.
//
// Library code depends only on [Logger]. Binaries plug in the zerolog
// adapter; tests and embedders that want silence use [NoopLogger].
//
//	logger := log.NewZerologAdapter(os.Stderr, log.FormatConsole, zerolog.InfoLevel)
//	c := lifecycle.NewCoordinator(lifecycle.WithLogger(logger))
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
