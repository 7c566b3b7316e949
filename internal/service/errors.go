package service

import "errors"

// Errors returned by the services. Storage errors never cross this boundary
// unwrapped: they are logged and reported as [ErrInternal].
var (
	// ErrUnauthorized is returned for a missing, malformed, expired or
	// otherwise invalid token, for a token naming an unknown account and for
	// failed logins. The cause is never distinguished to the caller.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMasterPasswordRequired is returned by the vault gate while the
	// account has no master password.
	ErrMasterPasswordRequired = errors.New("master password required")

	// ErrNotFound is returned when an entity does not exist or is not owned
	// by the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when registering an email that is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput is returned when required input is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal wraps every unexpected storage or crypto failure.
	ErrInternal = errors.New("internal error")

	// ErrTenantMismatch is returned when the caller's tenant does not match
	// the tenant of the account. Transports report it like [ErrNotFound].
	ErrTenantMismatch = errors.New("tenant mismatch")
)
