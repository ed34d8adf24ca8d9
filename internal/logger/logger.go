// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the task-manager API.
//
// Request handlers never hold a logger of their own: the trace middleware
// stores a request-scoped logger in the context and every layer below pulls
// it back out with FromContext or FromRequest, so entries written anywhere
// during a request carry the same trace_id (and user_id once the auth gate
// has run).
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger writing to stdout and tagged with role.
func NewLogger(role string) *Logger {
	return New(os.Stdout, role)
}

// New returns a JSON logger writing to w. Every entry carries the role, a
// timestamp and the calling function's name under "func".
func New(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{
		zerolog.New(w).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithUser returns a context whose logger also records userID.
func WithUser(ctx context.Context, userID string) context.Context {
	l := log.Ctx(ctx).With().Str("user_id", userID).Logger()
	return l.WithContext(ctx)
}

// FromRequest returns the logger attached to r's context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. Without one, zerolog's
// default (or disabled) logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
