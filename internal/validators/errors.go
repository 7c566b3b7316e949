package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidTenantID  = errors.New("invalid tenant ID")
	ErrInvalidEntryID   = errors.New("invalid entry ID")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyName        = errors.New("name is required")
	ErrEmptySecretValue = errors.New("password is required")
	ErrEmptyCandidate   = errors.New("password to verify is required")
)
