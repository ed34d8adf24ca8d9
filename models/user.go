// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and ownership
// of tasks. Credential-related fields are never serialized to JSON.
type User struct {
	// ID is the unique identifier of the user (UUIDv7 string).
	ID string `json:"id"`

	// Name is the display name of the user. Stored trimmed, never empty.
	Name string `json:"name"`

	// Email is the login identifier of the user. Stored trimmed and
	// lower-cased; logically unique across all users.
	Email string `json:"email"`

	// Age is a non-negative integer, zero when not provided.
	Age int `json:"age"`

	// Password holds the bcrypt digest of the last plaintext password set.
	// It MUST never contain a plaintext value once persisted.
	Password string `json:"-"`

	// PlainPassword is a pending plaintext password that has not been hashed
	// yet. It is consumed (hashed and cleared) by the service layer before
	// any write reaches the store, and is never persisted.
	PlainPassword string `json:"-"`

	// Tokens is the list of live session tokens in insertion order.
	Tokens []string `json:"-"`

	// Avatar holds the canonical PNG encoding of the user's avatar, or nil.
	Avatar []byte `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last profile modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasToken reports whether token is present in the user's live session list.
func (u User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// SignUpRequest is the body of POST /users.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

// User converts the request into a User with a pending plaintext password.
func (r SignUpRequest) User() User {
	return User{
		Name:          r.Name,
		Email:         r.Email,
		Age:           r.Age,
		PlainPassword: r.Password,
	}
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by sign-up and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
