package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// IdentityVerifier turns a session token into a trusted caller identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

// MasterGate admits only accounts that have a master password.
type MasterGate interface {
	Check(ctx context.Context, userID int64) error
}

// Authorizer runs the gate chain in front of the transports.
type Authorizer interface {
	// Identify verifies the token only.
	Identify(ctx context.Context, token string) (models.Identity, error)

	// Authorize verifies the token and then checks the master password,
	// stopping at the first denial.
	Authorize(ctx context.Context, token string) (models.Identity, error)
}

// AccountService creates identities and issues session tokens.
type AccountService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	OAuthLogin(ctx context.Context, external models.ExternalIdentity) (models.AuthResult, error)
	SetMasterPassword(ctx context.Context, userID int64, password string) (models.MessageResponse, error)
	VerifyLoginPassword(ctx context.Context, userID int64, candidate string) (models.MatchResult, error)
	MasterPasswordStatus(ctx context.Context, userID int64) (models.MasterPasswordStatus, error)
}

// CredentialService manages the caller's credential entries. Every method
// expects an identity that already passed the [Authorizer].
type CredentialService interface {
	Upsert(ctx context.Context, identity models.Identity, input models.CredentialInput) (models.CredentialEntry, error)
	List(ctx context.Context, identity models.Identity) ([]models.CredentialEntry, error)
	Update(ctx context.Context, identity models.Identity, entryID int64, patch models.CredentialPatch) (models.CredentialEntry, error)
	History(ctx context.Context, identity models.Identity, entryID int64) ([]models.HistoryRecord, error)
	Verify(ctx context.Context, identity models.Identity, entryID int64, candidate string) (models.MatchResult, error)
	Delete(ctx context.Context, identity models.Identity, entryID int64) (models.MessageResponse, error)
}

// CredentialServiceWrapper defines middleware composition for
// CredentialService. Implementations wrap an existing CredentialService to
// add behavior such as validating.
type CredentialServiceWrapper interface {
	Wrap(CredentialService) CredentialService
}

// ExternalIdentityResolver resolves an OAuth provider access token into the
// provider's profile of the user.
type ExternalIdentityResolver interface {
	Resolve(ctx context.Context, accessToken string) (models.ExternalIdentity, error)
}
