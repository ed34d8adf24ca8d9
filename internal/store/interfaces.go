// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store defines the persistence contracts of the task manager and
// their PostgreSQL, MongoDB and in-memory implementations.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/task-manager/models"
)

// UserRepository persists user accounts together with their avatar.
type UserRepository interface {
	// CreateUser inserts a new user. Returns ErrEmailAlreadyExists when the
	// email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID returns the profile of the user with the given id. The
	// session list is served by TokenRepository and left empty here.
	FindUserByID(ctx context.Context, userID string) (models.User, error)

	// FindUserByEmail returns the user with the given (normalized) email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// UpdateUser overwrites the profile fields (name, email, age, password)
	// of an existing user and bumps UpdatedAt.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// DeleteUser removes the user, its tokens and every task it owns.
	DeleteUser(ctx context.Context, userID string) error

	// SetAvatar replaces the avatar of the user. A nil avatar clears it.
	SetAvatar(ctx context.Context, userID string, avatar []byte) error

	// GetAvatar returns the stored avatar bytes. Returns ErrAvatarNotFound
	// both for a missing user and for a user without an avatar.
	GetAvatar(ctx context.Context, userID string) ([]byte, error)
}

// TokenRepository maintains the per-user list of live session tokens.
type TokenRepository interface {
	// AddToken appends token to the user's list. When maxSessions is
	// positive, the oldest tokens beyond that count are evicted.
	AddToken(ctx context.Context, userID, token string, maxSessions int) error

	// RemoveToken drops one token. Removing an absent token is not an error.
	RemoveToken(ctx context.Context, userID, token string) error

	// RemoveAllTokens empties the user's token list.
	RemoveAllTokens(ctx context.Context, userID string) error

	// HasToken reports whether token is currently live for the user.
	HasToken(ctx context.Context, userID, token string) (bool, error)

	// ListTokens returns the user's tokens in insertion order. Used to report
	// how many sessions a logout of every device ended.
	ListTokens(ctx context.Context, userID string) ([]string, error)
}

// TaskRepository persists tasks. Every read and write is scoped to an owner.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)

	// FindTask returns ErrTaskNotFound when the task does not exist or
	// belongs to another user.
	FindTask(ctx context.Context, ownerID, taskID string) (models.Task, error)

	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)

	// UpdateTask overwrites description and completed of an owned task.
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)

	DeleteTask(ctx context.Context, ownerID, taskID string) (models.Task, error)
}

// ErrorClassificator decides whether a failed database call is worth
// repeating.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
