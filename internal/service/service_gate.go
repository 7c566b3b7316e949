// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// identityVerifier validates session tokens and resolves the tenant of the
// account named by the "sub" claim.
type identityVerifier struct {
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to verify token signatures.
	tokenSignKey string

	logger *logger.Logger
}

// NewIdentityVerifier constructs an [IdentityVerifier] that checks tokens
// signed with tokenSignKey.
func NewIdentityVerifier(userRepository store.UserRepository, tokenSignKey string, logger *logger.Logger) IdentityVerifier {
	return &identityVerifier{
		userRepository: userRepository,
		tokenSignKey:   tokenSignKey,
		logger:         logger,
	}
}

// Verify returns the identity carried by token.
//
// Every rejection (empty, malformed, badly signed or expired token, unknown
// account) is reported as [ErrUnauthorized]. A storage failure while loading
// the account is [ErrInternal].
func (v *identityVerifier) Verify(ctx context.Context, token string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Identity{}, ErrUnauthorized
	}

	parsed, err := utils.ValidateAndParseJWTToken(token, v.tokenSignKey)
	if err != nil {
		log.Debug().Err(err).Str("func", "*identityVerifier.Verify").Msg("token rejected")
		return models.Identity{}, ErrUnauthorized
	}

	user, err := v.userRepository.FindUserByID(ctx, parsed.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug().Str("func", "*identityVerifier.Verify").Int64("user_id", parsed.UserID).Msg("token names unknown account")
			return models.Identity{}, ErrUnauthorized
		}
		log.Err(err).Str("func", "*identityVerifier.Verify").Int64("user_id", parsed.UserID).Msg("error loading account")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return models.Identity{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
	}, nil
}

// masterGate admits accounts that have a non-empty password hash.
type masterGate struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewMasterGate constructs a [MasterGate] backed by userRepository.
func NewMasterGate(userRepository store.UserRepository, logger *logger.Logger) MasterGate {
	return &masterGate{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Check returns nil when the account exists and has a master password and
// [ErrMasterPasswordRequired] otherwise.
func (g *masterGate) Check(ctx context.Context, userID int64) error {
	user, err := g.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrMasterPasswordRequired
		}
		logger.FromContext(ctx).Err(err).Str("func", "*masterGate.Check").Int64("user_id", userID).Msg("error loading account")
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if !user.HasMasterPassword() {
		return ErrMasterPasswordRequired
	}

	return nil
}

// authorizer composes the identity verifier and the master gate.
type authorizer struct {
	verifier IdentityVerifier
	gate     MasterGate
}

// NewAuthorizer constructs an [Authorizer] from its two gates.
func NewAuthorizer(verifier IdentityVerifier, gate MasterGate) Authorizer {
	return &authorizer{
		verifier: verifier,
		gate:     gate,
	}
}

func (a *authorizer) Identify(ctx context.Context, token string) (models.Identity, error) {
	return a.verifier.Verify(ctx, token)
}

func (a *authorizer) Authorize(ctx context.Context, token string) (models.Identity, error) {
	identity, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return models.Identity{}, err
	}

	if err = a.gate.Check(ctx, identity.UserID); err != nil {
		return models.Identity{}, err
	}

	return identity, nil
}
