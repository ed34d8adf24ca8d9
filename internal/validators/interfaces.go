// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks users and tasks before they are stored.
//
// Rules live as go-playground/validator tags on private rule structs. A
// failing tag is translated into one of the sentinel errors of this package,
// so callers compare with errors.Is and never see validator internals.
//
// Passing field names restricts the check to those fields, which is how a
// partial update validates only what the client sent:
//
//	err := v.Validate(ctx, user, "email", "age")
package validators

import "context"

// Validator validates a model value, optionally only the named fields.
// Unknown field names yield ErrUnknownField and unsupported values
// ErrUnsupportedType.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
