package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user. It is the "sub" claim of
	// every session token issued for the account.
	ID int64 `json:"id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the master password.
	// An empty value means the master password has not been set yet,
	// which is the case for accounts provisioned through OAuth.
	PasswordHash string `json:"-"`

	// TenantID is the owning tenant. Assigned at creation and immutable.
	TenantID int64 `json:"tenantId"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last change to the account.
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasMasterPassword reports whether the master password has been set.
func (u User) HasMasterPassword() bool {
	return u.PasswordHash != ""
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
