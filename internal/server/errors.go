// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when the handler set has
// nothing to listen with: no HTTP handler or no HTTP address.
var errNoServersAreCreated = errors.New("no servers are created: http handler and address are required")
