// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// task-manager application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and finally built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// password hashing cost and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Avatar holds limits for avatar uploads and image normalization.
	Avatar Avatar `envPrefix:"AVATAR_"`

	// Adapter holds configuration for the outbound mail API adapter.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// session lifecycle, and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify session JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid after
	// issuance. Zero means tokens only expire when revoked.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// MaxSessions caps the number of live session tokens per user. When a new
	// token would exceed the cap, the oldest tokens are evicted. Zero means
	// unlimited.
	// Env: APP_MAX_SESSIONS
	MaxSessions int `env:"MAX_SESSIONS"`

	// PasswordHashCost is the bcrypt work factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// Version is the version string of the running application.
	// Exposed via the /version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the database backend. The backend is
// selected from the DSN scheme: postgres:// (or postgresql://), mongodb://
// (or mongodb+srv://) and memory://.
type DB struct {
	// DSN is the Data Source Name (connection string).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MongoDatabase is the database name used when the DSN selects MongoDB.
	// Env: STORAGE_DB_MONGO_DATABASE
	MongoDatabase string `env:"MONGO_DATABASE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:3000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it. Zero disables the timeout.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// AllowedOrigins lists origins accepted by the CORS middleware.
	// Empty disables CORS handling.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Avatar holds limits for avatar uploads.
type Avatar struct {
	// MaxBytes is the upload size ceiling in bytes.
	// Env: AVATAR_MAX_BYTES
	MaxBytes int64 `env:"MAX_BYTES"`

	// Size is the edge length in pixels of the normalized square avatar.
	// Env: AVATAR_SIZE
	Size int `env:"SIZE"`

	// MaxPixels caps width×height of an uploaded image, checked from its
	// header before the pixels are decoded.
	// Env: AVATAR_MAX_PIXELS
	MaxPixels int64 `env:"MAX_PIXELS"`

	// Concurrency bounds how many avatars are normalized at the same time.
	// Env: AVATAR_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`
}

// Adapter holds configuration for the outbound mail API.
type Adapter struct {
	// MailAPIURL is the base URL of the HTTP mail API. When empty, mails are
	// only written to the log.
	// Env: ADAPTER_MAIL_API_URL
	MailAPIURL string `env:"MAIL_API_URL"`

	// MailAPIKey is sent as a bearer token to the mail API.
	// Env: ADAPTER_MAIL_API_KEY
	MailAPIKey string `env:"MAIL_API_KEY"`

	// MailFrom is the sender address of outgoing mails.
	// Env: ADAPTER_MAIL_FROM
	MailFrom string `env:"MAIL_FROM"`

	// RequestTimeout bounds a single call to the mail API.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
