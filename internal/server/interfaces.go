package server

import "context"

// Server defines the lifecycle contract of the application server.
type Server interface {
	// RunServer serves requests until SIGINT, SIGTERM or SIGQUIT is received
	// and returns after graceful shutdown.
	RunServer()

	// Run serves requests until ctx is cancelled, then shuts down gracefully.
	Run(ctx context.Context) error
}
