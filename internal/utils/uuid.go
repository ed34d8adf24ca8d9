package utils

import "github.com/google/uuid"

// IDGenerator returns a fresh identifier for a user or task.
type IDGenerator func() string

// NewID returns a UUIDv7 string so that identifiers sort by creation time.
// A failing clock source degrades to a random v4.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
