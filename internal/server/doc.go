// Package server runs the HTTP transport of the task manager.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown bounded by the configured timeout.
package server
