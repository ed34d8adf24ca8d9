// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Task is a to-do item owned by exactly one user.
type Task struct {
	// ID is the unique identifier of the task (UUIDv7 string).
	ID string `json:"id"`

	// Description is the trimmed, non-empty task text.
	Description string `json:"description"`

	// Completed reports whether the task is done. Defaults to false.
	Completed bool `json:"completed"`

	// Owner is the ID of the user who created the task. Immutable.
	Owner string `json:"owner"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// SortOrder is the direction used when listing tasks.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilter narrows and orders a task listing. Owner is always required.
type TaskFilter struct {
	Owner string

	// Completed filters by completion state when non-nil.
	Completed *bool

	// Limit caps the number of returned tasks; zero means no limit.
	Limit uint64

	// Skip is the number of tasks to skip before returning results.
	Skip uint64

	// SortBy is one of "created_at", "updated_at", "description",
	// "completed". Empty means insertion order.
	SortBy    string
	SortOrder SortOrder
}
