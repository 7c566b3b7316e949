// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while reading a request. Callers can match against
// them with [errors.Is].
var (
	// ErrMissingToken is returned when the request carries neither an
	// "Authorization" header nor an access_token cookie.
	ErrMissingToken = errors.New("missing session token")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidEntryID is returned when the {id} path parameter is not a
	// positive integer.
	ErrInvalidEntryID = errors.New("invalid entry id")

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// errNoIdentity means an authenticated route ran without the gate
	// middleware.
	errNoIdentity = errors.New("no identity in request context")
)
