// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself, before a request
// reaches the service layer.
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrInvalidGZip is returned when a body marked as gzip cannot be
	// inflated.
	ErrInvalidGZip = errors.New("invalid gzip body")

	// ErrMissingAvatar is returned when the multipart upload carries no
	// "avatar" file field.
	ErrMissingAvatar = errors.New("please upload an image in the `avatar` field")

	// ErrInvalidQuery is returned when a listing query parameter cannot be
	// parsed.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrRouteNotFound is the body of every 404 produced by routing.
	ErrRouteNotFound = errors.New("not found")
)
