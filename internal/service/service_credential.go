// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// credentialService is the concrete implementation of CredentialService.
// It delegates persistence to a CredentialRepository and translates storage
// errors into service errors. Secret values are never logged.
type credentialService struct {
	credentialRepository store.CredentialRepository

	logger *logger.Logger
}

// NewCredentialService constructs a CredentialService backed by
// credentialRepository. Input validation is not performed here; wrap the
// result with [NewCredentialValidationService].
func NewCredentialService(credentialRepository store.CredentialRepository, logger *logger.Logger) CredentialService {
	return &credentialService{
		credentialRepository: credentialRepository,
		logger:               logger,
	}
}

// Upsert creates a new entry or, when an entry with the same identity tuple
// exists, moves its current value into history and stores the new one.
func (c *credentialService) Upsert(ctx context.Context, identity models.Identity, input models.CredentialInput) (models.CredentialEntry, error) {
	entry, created, err := c.credentialRepository.Upsert(ctx, identity, input)
	if err != nil {
		return models.CredentialEntry{}, c.translate(ctx, err, "*credentialService.Upsert", identity, 0)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*credentialService.Upsert").
		Int64("user_id", identity.UserID).
		Int64("tenant_id", identity.TenantID).
		Int64("entry_id", entry.ID).
		Bool("created", created).
		Msg("credential saved")

	return entry, nil
}

// List returns the caller's entries in insertion order.
func (c *credentialService) List(ctx context.Context, identity models.Identity) ([]models.CredentialEntry, error) {
	entries, err := c.credentialRepository.ListByOwner(ctx, identity)
	if err != nil {
		return nil, c.translate(ctx, err, "*credentialService.List", identity, 0)
	}
	return entries, nil
}

// Update versions the owned entry and applies patch.
func (c *credentialService) Update(ctx context.Context, identity models.Identity, entryID int64, patch models.CredentialPatch) (models.CredentialEntry, error) {
	entry, err := c.credentialRepository.Update(ctx, identity.Ref(entryID), patch)
	if err != nil {
		return models.CredentialEntry{}, c.translate(ctx, err, "*credentialService.Update", identity, entryID)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*credentialService.Update").
		Int64("user_id", identity.UserID).
		Int64("entry_id", entryID).
		Msg("credential updated")

	return entry, nil
}

// History returns the superseded values of the owned entry, newest first.
func (c *credentialService) History(ctx context.Context, identity models.Identity, entryID int64) ([]models.HistoryRecord, error) {
	history, err := c.credentialRepository.ListHistory(ctx, identity.Ref(entryID))
	if err != nil {
		return nil, c.translate(ctx, err, "*credentialService.History", identity, entryID)
	}
	return history, nil
}

// Verify compares candidate with the current value of the owned entry.
// History values never match.
func (c *credentialService) Verify(ctx context.Context, identity models.Identity, entryID int64, candidate string) (models.MatchResult, error) {
	entry, err := c.credentialRepository.GetOwned(ctx, identity.Ref(entryID))
	if err != nil {
		return models.MatchResult{}, c.translate(ctx, err, "*credentialService.Verify", identity, entryID)
	}

	isMatch := subtle.ConstantTimeCompare([]byte(entry.SecretValue), []byte(candidate)) == 1
	return matchResult(isMatch), nil
}

// Delete removes the owned entry and its whole history.
func (c *credentialService) Delete(ctx context.Context, identity models.Identity, entryID int64) (models.MessageResponse, error) {
	removed, err := c.credentialRepository.Delete(ctx, identity.Ref(entryID))
	if err != nil {
		return models.MessageResponse{}, c.translate(ctx, err, "*credentialService.Delete", identity, entryID)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*credentialService.Delete").
		Int64("user_id", identity.UserID).
		Int64("entry_id", entryID).
		Int64("rows", removed).
		Msg("credential deleted")

	return models.MessageResponse{Message: app.MsgCredentialDeleted}, nil
}

// translate maps repository errors onto service errors. Anything that is not
// an ownership or tenant failure is logged and reported as ErrInternal.
func (c *credentialService) translate(ctx context.Context, err error, funcName string, identity models.Identity, entryID int64) error {
	switch {
	case errors.Is(err, store.ErrCredentialNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrTenantMismatch):
		logger.FromContext(ctx).Warn().
			Str("func", funcName).
			Int64("user_id", identity.UserID).
			Int64("tenant_id", identity.TenantID).
			Msg("tenant does not match account")
		return ErrTenantMismatch
	}

	logger.FromContext(ctx).Err(err).
		Str("func", funcName).
		Int64("user_id", identity.UserID).
		Int64("tenant_id", identity.TenantID).
		Int64("entry_id", entryID).
		Msg("credential storage failure")
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
