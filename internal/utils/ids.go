package utils

import "github.com/google/uuid"

// NewID returns a random UUID string for habits and log entries.
func NewID() string {
	return uuid.New().String()
}
