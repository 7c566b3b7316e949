package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// CredentialValidationService is a CredentialService decorator that rejects
// malformed input with ErrInvalidInput before delegating to the wrapped
// service.
type CredentialValidationService struct {
	inner     CredentialService
	validator validators.Validator
}

// NewCredentialValidationService returns a wrapper; call Wrap to attach the
// service it guards.
func NewCredentialValidationService() CredentialServiceWrapper {
	return &CredentialValidationService{
		validator: validators.NewCredentialValidator(),
	}
}

func (v *CredentialValidationService) Upsert(ctx context.Context, identity models.Identity, input models.CredentialInput) (models.CredentialEntry, error) {
	if err := v.validate(ctx, identity); err != nil {
		return models.CredentialEntry{}, err
	}
	if err := v.validate(ctx, input); err != nil {
		return models.CredentialEntry{}, err
	}

	return v.inner.Upsert(ctx, identity, input)
}

func (v *CredentialValidationService) List(ctx context.Context, identity models.Identity) ([]models.CredentialEntry, error) {
	if err := v.validate(ctx, identity); err != nil {
		return nil, err
	}

	return v.inner.List(ctx, identity)
}

func (v *CredentialValidationService) Update(ctx context.Context, identity models.Identity, entryID int64, patch models.CredentialPatch) (models.CredentialEntry, error) {
	if err := v.validate(ctx, identity.Ref(entryID)); err != nil {
		return models.CredentialEntry{}, err
	}
	if err := v.validate(ctx, patch); err != nil {
		return models.CredentialEntry{}, err
	}

	return v.inner.Update(ctx, identity, entryID, patch)
}

func (v *CredentialValidationService) History(ctx context.Context, identity models.Identity, entryID int64) ([]models.HistoryRecord, error) {
	if err := v.validate(ctx, identity.Ref(entryID)); err != nil {
		return nil, err
	}

	return v.inner.History(ctx, identity, entryID)
}

func (v *CredentialValidationService) Verify(ctx context.Context, identity models.Identity, entryID int64, candidate string) (models.MatchResult, error) {
	if err := v.validate(ctx, identity.Ref(entryID)); err != nil {
		return models.MatchResult{}, err
	}
	if err := v.validate(ctx, models.PasswordRequest{Password: candidate}); err != nil {
		return models.MatchResult{}, err
	}

	return v.inner.Verify(ctx, identity, entryID, candidate)
}

func (v *CredentialValidationService) Delete(ctx context.Context, identity models.Identity, entryID int64) (models.MessageResponse, error) {
	if err := v.validate(ctx, identity.Ref(entryID)); err != nil {
		return models.MessageResponse{}, err
	}

	return v.inner.Delete(ctx, identity, entryID)
}

func (v *CredentialValidationService) Wrap(inner CredentialService) CredentialService {
	v.inner = inner
	return v
}

func (v *CredentialValidationService) validate(ctx context.Context, obj any) error {
	if err := v.validator.Validate(ctx, obj); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
