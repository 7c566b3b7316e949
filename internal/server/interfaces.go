package server

import "context"

// Server defines the lifecycle contract of the transport servers managed by
// this package.
type Server interface {
	// RunServer serves requests until SIGTERM, SIGINT or SIGQUIT is received
	// and then shuts down gracefully.
	RunServer()

	// Run serves requests until ctx is cancelled or a transport fails, then
	// shuts every transport down.
	Run(ctx context.Context) error

	// Shutdown gracefully stops every transport.
	Shutdown()
}

// transport is a single listener run by [Server].
type transport interface {
	serve() error
	shutdown(ctx context.Context) error
	name() string
}
