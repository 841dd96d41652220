package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down and
	// returns. A listener failure is returned immediately.
	Run(ctx context.Context) error

	// Shutdown stops accepting connections and waits for active requests
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
