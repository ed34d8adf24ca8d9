// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}
	if cfg.App.MaxSessions < 0 {
		return fmt.Errorf("%w: negative max sessions", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password hash cost must be in [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if !isSupportedDSN(cfg.Storage.DB.DSN) {
		return fmt.Errorf("%w: unsupported or empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Avatar.MaxBytes <= 0 || cfg.Avatar.Size <= 0 || cfg.Avatar.Concurrency <= 0 || cfg.Avatar.MaxPixels < 0 {
		return ErrInvalidAvatarConfigs
	}

	return nil
}

func isSupportedDSN(dsn string) bool {
	for _, scheme := range []string{"postgres://", "postgresql://", "mongodb://", "mongodb+srv://", "memory://"} {
		if strings.HasPrefix(dsn, scheme) {
			return true
		}
	}
	return false
}
