package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrNotFound           = errors.New("record not found")
	ErrNoSession          = errors.New("no active session")
	ErrMFANotEnrolled     = errors.New("no MFA factor enrolled")
	ErrInvalidMFACode     = errors.New("invalid MFA code")

	// ErrValidation wraps input problems caught before any repository
	// call is made.
	ErrValidation = errors.New("validation failed")
)
