// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environ, or from the process environment when
// environ is nil. Field names come from the env and envPrefix tags on
// [StructuredConfig].
func parseEnv(cfg *StructuredConfig, environ map[string]string) error {
	opts := env.Options{Environment: environ}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
