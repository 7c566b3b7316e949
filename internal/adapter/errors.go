package adapter

import "errors"

var (
	// ErrUnauthorized is returned when the provider rejects the access token
	// or the profile cannot identify an account.
	ErrUnauthorized = errors.New("external identity unauthorized")

	// ErrMissingEmail is returned when the provider profile has no email.
	ErrMissingEmail = errors.New("external identity has no email")

	ErrBadRequest          = errors.New("bad request")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)
