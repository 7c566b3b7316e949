package models

// AuthResult is returned by every successful register, login and OAuth
// login.
type AuthResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`

	// HasMasterPassword is always true for password based logins since
	// registration sets the master password.
	HasMasterPassword bool `json:"hasMasterPassword"`
}

// MatchResult is the outcome of a password comparison.
type MatchResult struct {
	IsMatch bool   `json:"isMatch"`
	Message string `json:"message"`
}

// MessageResponse acknowledges an operation without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// MasterPasswordStatus reports whether the caller's vault is unlocked.
type MasterPasswordStatus struct {
	HasMasterPassword bool `json:"hasMasterPassword"`
}

// ErrorResponse is the body of every failed HTTP request.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
