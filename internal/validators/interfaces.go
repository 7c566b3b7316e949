// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of vault requests before they reach
// the credential store.
//
// A [Validator] accepts any of the request models it knows (identities, entry
// references, credential inputs and patches, password requests) by value or
// by pointer. Passing field names restricts the check to those fields, so a
// caller can validate a single identifier without building a whole request.
//
// Errors are package sentinels and can be matched with [errors.Is].
package validators

import "context"

// Validator validates a request value, optionally only the named fields.
type Validator interface {
	// Validate returns the first rule violated by value. Unsupported value
	// types and unknown field names are errors as well.
	Validate(ctx context.Context, value any, fields ...string) error
}
