// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external services go-pass-vault
// talks to.
//
// The primary abstraction is [IdentityProvider], which resolves an OAuth
// provider access token into the profile of its owner. The package ships an
// OpenID Connect userinfo implementation ([NewUserInfoAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// IdentityProvider resolves provider access tokens.
type IdentityProvider interface {
	// Resolve fetches the profile owned by accessToken. A rejected token or
	// a profile without an email returns an error wrapping [ErrUnauthorized].
	Resolve(ctx context.Context, accessToken string) (models.ExternalIdentity, error)
}
