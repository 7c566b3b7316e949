// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Category classifies a credential entry. The set is closed.
type Category string

const (
	// CategoryDevice marks credentials of physical devices (routers, NAS, ...).
	CategoryDevice Category = "device"

	// CategoryApplication marks credentials of applications and web sites.
	CategoryApplication Category = "application"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDevice, CategoryApplication:
		return true
	default:
		return false
	}
}

// CredentialEntry is one stored secret together with its metadata.
//
// The logical identity of an entry is the tuple
// (UserID, TenantID, Category, Name, URL, AccountName); an upsert with the
// same tuple versions the existing entry instead of creating a new one.
type CredentialEntry struct {
	// ID is the unique identifier of the entry.
	ID int64 `json:"id"`

	// TenantID must always equal the owning user's tenant.
	TenantID int64 `json:"tenantId"`

	// UserID is the owner of the entry.
	UserID int64 `json:"userId"`

	Category Category `json:"category"`
	Name     string   `json:"name"`

	// URL and AccountName are optional. nil and an empty string are
	// different values for dedup purposes.
	URL         *string `json:"url"`
	AccountName *string `json:"accountName"`

	// SecretValue is the current secret. It is stored as supplied so the
	// owner can read it back.
	SecretValue string `json:"password"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HistoryRecord is an immutable snapshot of a secret value taken at the
// moment it was superseded.
type HistoryRecord struct {
	ID          int64     `json:"id"`
	EntryID     int64     `json:"passwordId"`
	SecretValue string    `json:"value"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CredentialInput is the payload of an upsert.
type CredentialInput struct {
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	URL         *string  `json:"url,omitempty"`
	AccountName *string  `json:"accountName,omitempty"`
	SecretValue string   `json:"password"`
}

// CredentialPatch is the payload of an update. SecretValue is mandatory;
// nil optional fields are left unchanged.
type CredentialPatch struct {
	Name        *string `json:"name,omitempty"`
	URL         *string `json:"url,omitempty"`
	AccountName *string `json:"accountName,omitempty"`
	SecretValue string  `json:"password"`
}

// Apply copies the fields present in p onto e.
func (p CredentialPatch) Apply(e *CredentialEntry) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.URL != nil {
		e.URL = p.URL
	}
	if p.AccountName != nil {
		e.AccountName = p.AccountName
	}
	e.SecretValue = p.SecretValue
}
