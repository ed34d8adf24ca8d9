package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves requests until SIGTERM, SIGINT or SIGQUIT arrives and
	// then shuts down gracefully.
	RunServer() error

	// Run serves requests until ctx is done. It returns the first serving
	// or shutdown error.
	Run(ctx context.Context) error
}
