// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown is implemented by components that hold a FIFO open.
type GracefulShutdown interface {
	// Shutdown requests every active read loop to stop and releases what the
	// caller's goroutine owns. Safe to call more than once.
	Shutdown() error
}
