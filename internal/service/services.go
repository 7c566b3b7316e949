package service

import (
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

// Services groups everything the transports call into.
type Services struct {
	Authorizer        Authorizer
	AccountService    AccountService
	CredentialService CredentialService

	// IdentityResolver resolves OAuth provider tokens. It is nil when OAuth
	// login is not configured.
	IdentityResolver ExternalIdentityResolver
}

// NewServices wires the services on top of storages. resolver may be nil.
func NewServices(storages *store.Storages, cfg config.App, resolver ExternalIdentityResolver, logger *logger.Logger) *Services {
	verifier := NewIdentityVerifier(storages.UserRepository, cfg.TokenSignKey, logger)
	gate := NewMasterGate(storages.UserRepository, logger)

	return &Services{
		Authorizer:     NewAuthorizer(verifier, gate),
		AccountService: NewAccountService(storages.UserRepository, cfg, logger),
		CredentialService: NewCredentialValidationService().
			Wrap(NewCredentialService(storages.CredentialRepository, logger)),
		IdentityResolver: resolver,
	}
}
