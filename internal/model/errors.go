package model

import "errors"

// Common errors used across the application
var (
	// ErrValidation covers malformed or missing input (empty username or
	// password, over-long username, missing request fields).
	ErrValidation = errors.New("invalid input")

	// ErrUsernameTaken is returned by the store when a registration loses the
	// uniqueness race or the username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrPlayerNotFound is returned for lookups of unknown usernames.
	ErrPlayerNotFound = errors.New("player not found")
)
