// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"runtime"
	"time"
)

const (
	DefaultHTTPAddress      = "0.0.0.0:3000"
	DefaultTokenIssuer      = "task-manager"
	DefaultPasswordHashCost = 8
	DefaultVersion          = "dev"
	DefaultDSN              = "memory://"
	DefaultMongoDatabase    = "task-manager-api"
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultAvatarMaxBytes   = 1_000_000
	DefaultAvatarSize       = 250
	DefaultAvatarMaxPixels  = 4096 * 4096
	DefaultMailTimeout      = 5 * time.Second
)

// defaults returns the lowest-priority configuration layer. Only fields left
// empty by every other source are taken from it.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      DefaultTokenIssuer,
			PasswordHashCost: DefaultPasswordHashCost,
			Version:          DefaultVersion,
		},
		Storage: Storage{
			DB: DB{
				DSN:           DefaultDSN,
				MongoDatabase: DefaultMongoDatabase,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Avatar: Avatar{
			MaxBytes:    DefaultAvatarMaxBytes,
			Size:        DefaultAvatarSize,
			MaxPixels:   DefaultAvatarMaxPixels,
			Concurrency: runtime.NumCPU(),
		},
		Adapter: Adapter{
			RequestTimeout: DefaultMailTimeout,
		},
	}
}
