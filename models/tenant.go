// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// Tenant is the isolation boundary grouping one account's data.
// A tenant is created implicitly together with its account and is never
// merged or split afterwards.
type Tenant struct {
	// ID is the unique identifier of the tenant.
	ID int64 `json:"id"`

	// Name is a human-readable label, "<email>'s Tenant" by default.
	Name string `json:"name"`

	// CreatedAt is the moment the tenant was created.
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultTenantName returns the name given to the tenant created for email.
func DefaultTenantName(email string) string {
	return fmt.Sprintf("%s's Tenant", email)
}
