// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	tagNoPassword = "nopassword"
	tagMaxBytes   = "maxbytes"
)

// newEngine builds a validator.Validate with the custom rules shared by all
// validators of this package.
func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// a password must not contain the word "password" in any letter case
	_ = v.RegisterValidation(tagNoPassword, func(fl validator.FieldLevel) bool {
		return !strings.Contains(strings.ToLower(fl.Field().String()), "password")
	})

	// maxbytes=N bounds the UTF-8 length of a string; max counts runes
	_ = v.RegisterValidation(tagMaxBytes, func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	return v
}

// resolveFields maps public field names onto rule struct field names.
// It returns ErrUnknownField for a name that has no rule.
func resolveFields(known map[string]string, fields []string) ([]string, error) {
	resolved := make([]string, 0, len(fields))
	for _, f := range fields {
		name, ok := known[f]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		resolved = append(resolved, name)
	}
	return resolved, nil
}

// check runs the rule struct through the engine, restricted to fields when
// any are given, and translates the first failure with translate.
func check(ctx context.Context, engine *validator.Validate, rules any, fields []string, translate func(validator.FieldError) error) error {
	var err error
	if len(fields) == 0 {
		err = engine.StructCtx(ctx, rules)
	} else {
		err = engine.StructPartialCtx(ctx, rules, fields...)
	}
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	return translate(validationErrors[0])
}
