package models

import "errors"

var (
	// ErrValidation marks malformed or missing input. Handlers surface it
	// as a 400 and no write happens.
	ErrValidation = errors.New("validation failed")

	// ErrNoSession marks an operation attempted without a session token.
	// Handlers surface it as a 401.
	ErrNoSession = errors.New("no session")
)
