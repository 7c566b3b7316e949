// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-pass-vault services and HTTP handlers.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies. Keeping them in one place ensures consistent wording
// throughout the API and guarantees that no internal detail leaks into a
// response.
package app

// Messages attached to error responses, one per error kind.
const (
	// MsgUnauthorized is returned for a missing, malformed, expired or
	// otherwise invalid session token. The reason is never distinguished.
	MsgUnauthorized = "unauthorized"

	// MsgInvalidLoginPassword is returned when the supplied email/password
	// combination does not match any existing account.
	MsgInvalidLoginPassword = "invalid credentials"

	// MsgMasterPasswordRequired is returned by vault routes while the
	// caller's master password has not been set.
	MsgMasterPasswordRequired = "master password is not set"

	// MsgNotFound is returned when the entity does not exist or belongs to
	// someone else.
	MsgNotFound = "not found"

	// MsgEmailAlreadyRegistered is returned on a duplicate registration.
	MsgEmailAlreadyRegistered = "email already registered"

	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)

// Messages attached to successful responses.
const (
	MsgPasswordMatches      = "Password matches"
	MsgPasswordDoesNotMatch = "Password does not match"
	MsgMasterPasswordSet    = "Master password set successfully"
	MsgCredentialDeleted    = "Password and its history deleted successfully"
)
