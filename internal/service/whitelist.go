// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/task-manager/internal/validators"
	"github.com/MKhiriev/task-manager/models"
)

// FieldSetter decodes raw and assigns it to one field of entity.
type FieldSetter[T any] func(entity *T, raw json.RawMessage) error

// Whitelist is the fixed set of fields a partial update may touch.
type Whitelist[T any] struct {
	setters map[string]FieldSetter[T]
}

func NewWhitelist[T any](setters map[string]FieldSetter[T]) Whitelist[T] {
	return Whitelist[T]{setters: setters}
}

// Allowed returns the sorted field names of the whitelist.
func (w Whitelist[T]) Allowed() []string {
	fields := make([]string, 0, len(w.setters))
	for name := range w.setters {
		fields = append(fields, name)
	}
	slices.Sort(fields)
	return fields
}

// Check fails with ErrInvalidUpdates when payload has a key outside the
// whitelist. All offending keys are named in the error.
func (w Whitelist[T]) Check(payload Payload) error {
	var rejected []string
	for key := range payload {
		if _, ok := w.setters[key]; !ok {
			rejected = append(rejected, key)
		}
	}
	if len(rejected) == 0 {
		return nil
	}

	slices.Sort(rejected)
	return fmt.Errorf("%w: %s", ErrInvalidUpdates, strings.Join(rejected, ", "))
}

// Apply checks payload and assigns every field to a copy of entity. It
// returns the updated copy and the sorted names of the applied fields. On
// any error nothing is applied and entity is left as it was.
func (w Whitelist[T]) Apply(entity T, payload Payload) (T, []string, error) {
	var zero T
	if err := w.Check(payload); err != nil {
		return zero, nil, err
	}

	fields := make([]string, 0, len(payload))
	for key := range payload {
		fields = append(fields, key)
	}
	slices.Sort(fields)

	for _, field := range fields {
		if err := w.setters[field](&entity, payload[field]); err != nil {
			return zero, nil, fmt.Errorf("%w: %s: %w", ErrInvalidFieldValue, field, err)
		}
	}

	return entity, fields, nil
}

// jsonField builds a FieldSetter that decodes raw into V and hands it to
// assign.
func jsonField[T, V any](assign func(*T, V)) FieldSetter[T] {
	return func(entity *T, raw json.RawMessage) error {
		var value V
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		assign(entity, value)
		return nil
	}
}

var userWhitelist = NewWhitelist(map[string]FieldSetter[models.User]{
	validators.FieldName:     jsonField(func(u *models.User, v string) { u.Name = v }),
	validators.FieldEmail:    jsonField(func(u *models.User, v string) { u.Email = v }),
	validators.FieldPassword: jsonField(func(u *models.User, v string) { u.PlainPassword = v }),
	validators.FieldAge:      jsonField(func(u *models.User, v int) { u.Age = v }),
})

var taskWhitelist = NewWhitelist(map[string]FieldSetter[models.Task]{
	validators.FieldDescription: jsonField(func(t *models.Task, v string) { t.Description = v }),
	validators.FieldCompleted:   jsonField(func(t *models.Task, v bool) { t.Completed = v }),
})
