// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/task-manager/models"
)

// Payload is a decoded partial-update body: field name to raw JSON value.
type Payload = map[string]json.RawMessage

// CredentialService owns password hashing and verification.
type CredentialService interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches digest. Any failure, including a
	// malformed digest, is a mismatch.
	Verify(plain, digest string) bool
}

// SessionService manages the live session token list of a user.
type SessionService interface {
	// Issue signs a new token for user and appends it to the live list.
	Issue(ctx context.Context, user models.User) (string, error)
	// Revoke removes token from the live list. Revoking an absent token is
	// not an error.
	Revoke(ctx context.Context, user models.User, token string) error
	RevokeAll(ctx context.Context, user models.User) error
	// Resolve returns the owner of token if the signature is valid, the
	// owner exists and token is still live. Otherwise it returns
	// ErrUnauthorized.
	Resolve(ctx context.Context, token string) (models.User, string, error)
}

type UserService interface {
	Register(ctx context.Context, user models.User) (models.User, string, error)
	Login(ctx context.Context, email, password string) (models.User, string, error)
	// Update applies a whitelisted partial update. A payload with any key
	// outside {name, email, password, age} is rejected in full.
	Update(ctx context.Context, user models.User, payload Payload) (models.User, error)
	// Delete removes the account together with its tasks and sessions and
	// returns the snapshot of the deleted user.
	Delete(ctx context.Context, user models.User) (models.User, error)
}

type AvatarService interface {
	Set(ctx context.Context, userID, filename string, data []byte) error
	Clear(ctx context.Context, userID string) error
	// Get returns the stored PNG bytes. A missing user and a user without an
	// avatar are indistinguishable.
	Get(ctx context.Context, userID string) ([]byte, error)
}

// TaskService exposes CRUD over tasks. Every call is scoped to owner.
type TaskService interface {
	Create(ctx context.Context, owner string, req models.CreateTaskRequest) (models.Task, error)
	Get(ctx context.Context, owner, taskID string) (models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, owner, taskID string, payload Payload) (models.Task, error)
	Delete(ctx context.Context, owner, taskID string) (models.Task, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// TaskServiceWrapper defines middleware composition for TaskService.
// Implementations wrap an existing TaskService to add behavior such as
// validation.
type TaskServiceWrapper interface {
	Wrap(TaskService) TaskService // returns a decorated TaskService applying additional behavior
}
