package service

import (
	"errors"
	"fmt"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrPasswordRequired     = errors.New("password is required")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts, try again later")
)

// ===== Session Errors =====
var (
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotOwned matches ErrSessionNotFound under errors.Is, so
	// callers cannot tell a foreign session from a missing one.
	ErrSessionNotOwned = fmt.Errorf("%w: owned by another user", ErrSessionNotFound)
)
