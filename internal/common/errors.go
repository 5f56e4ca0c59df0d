// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors.
	ErrNoSession = errors.New("no active session")

	// Validation errors.
	ErrInvalidArgument = errors.New("invalid argument")
)
