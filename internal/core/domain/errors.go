package domain

import "errors"

// Sentinel errors for session and identity operations. Callers branch with
// errors.Is; wrapped messages are safe to show to the user as-is.
var (
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("user already exists")
	ErrNotFound           = errors.New("no user with that name")
	ErrRoleMismatch       = errors.New("role mismatch")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTransport          = errors.New("identity service unavailable, please try again")
	ErrSuperseded         = errors.New("superseded by a newer session operation")
)
