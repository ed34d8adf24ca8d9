// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, HTTP client initialization, JWT token generation and validation,
// and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/task-manager/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserCtxKey is the key under which the auth gate stores the
	// authenticated user.
	UserCtxKey = contextKey("user")

	// TokenCtxKey is the key under which the auth gate stores the raw
	// session token that authenticated the request.
	TokenCtxKey = contextKey("token")
)

// WithAuth returns a copy of ctx carrying the authenticated user and the
// session token presented by the caller.
//
// Example usage:
//
//	ctx = utils.WithAuth(ctx, user, token)
func WithAuth(ctx context.Context, user models.User, token string) context.Context {
	ctx = context.WithValue(ctx, UserCtxKey, user)
	return context.WithValue(ctx, TokenCtxKey, token)
}

// UserFromContext retrieves the authenticated user from the context.
//
// Returns the user and an ok flag:
//   - ok == true : value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// TokenFromContext retrieves the session token that authenticated the
// request.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok && token != ""
}
