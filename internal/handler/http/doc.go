// Package http implements the REST transport of the task manager.
//
// It wires the chi router, the bearer-token auth gate, request tracing,
// access logging and compression, and translates service errors into
// HTTP statuses with a single {"error": "..."} envelope.
package http
