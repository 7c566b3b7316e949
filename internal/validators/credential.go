package validators

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUserID targets the owner of an identity or entry reference.
	FieldUserID = "user_id"

	// FieldTenantID targets the tenant of an identity or entry reference.
	FieldTenantID = "tenant_id"

	// FieldEntryID targets the id of the addressed credential entry.
	FieldEntryID = "entry_id"

	// FieldCategory targets the closed category set of an upsert.
	FieldCategory = "category"

	// FieldName targets the entry name. On a patch an absent name is valid,
	// a present one must not be empty.
	FieldName = "name"

	// FieldSecretValue targets the secret being written.
	FieldSecretValue = "password"

	// FieldCandidate targets the password submitted for comparison.
	FieldCandidate = "candidate"
)

// CredentialValidator implements [Validator] for the inputs of the
// credential operations: models.Identity, models.EntryRef,
// models.CredentialInput, models.CredentialPatch and
// models.PasswordRequest.
//
// Both values and pointers are accepted. Passing field names restricts the
// checks to those fields.
type CredentialValidator struct{}

// NewCredentialValidator constructs a new CredentialValidator and returns it
// as the Validator interface.
func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate dispatches on the dynamic type of obj. Unknown types return
// [ErrUnsupportedType], unknown field names return [ErrUnknownField].
func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Identity:
		return v.validateIdentity(value, fields...)
	case *models.Identity:
		return v.validateIdentity(*value, fields...)

	case models.EntryRef:
		return v.validateEntryRef(value, fields...)
	case *models.EntryRef:
		return v.validateEntryRef(*value, fields...)

	case models.CredentialInput:
		return v.validateInput(value, fields...)
	case *models.CredentialInput:
		return v.validateInput(*value, fields...)

	case models.CredentialPatch:
		return v.validatePatch(value, fields...)
	case *models.CredentialPatch:
		return v.validatePatch(*value, fields...)

	case models.PasswordRequest:
		return v.validatePasswordRequest(value, fields...)
	case *models.PasswordRequest:
		return v.validatePasswordRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialValidator) validateIdentity(identity models.Identity, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldTenantID}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if identity.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldTenantID:
			if identity.TenantID <= 0 {
				return ErrInvalidTenantID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialValidator) validateEntryRef(ref models.EntryRef, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntryID, FieldUserID, FieldTenantID}
	}

	for _, f := range fields {
		switch f {
		case FieldEntryID:
			if ref.EntryID <= 0 {
				return ErrInvalidEntryID
			}
		case FieldUserID:
			if ref.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldTenantID:
			if ref.TenantID <= 0 {
				return ErrInvalidTenantID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialValidator) validateInput(input models.CredentialInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCategory, FieldName, FieldSecretValue}
	}

	for _, f := range fields {
		switch f {
		case FieldCategory:
			if !input.Category.Valid() {
				return ErrInvalidCategory
			}
		case FieldName:
			if input.Name == "" {
				return ErrEmptyName
			}
		case FieldSecretValue:
			if input.SecretValue == "" {
				return ErrEmptySecretValue
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialValidator) validatePatch(patch models.CredentialPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldSecretValue}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if patch.Name != nil && *patch.Name == "" {
				return ErrEmptyName
			}
		case FieldSecretValue:
			if patch.SecretValue == "" {
				return ErrEmptySecretValue
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialValidator) validatePasswordRequest(request models.PasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCandidate}
	}

	for _, f := range fields {
		switch f {
		case FieldCandidate:
			if request.Password == "" {
				return ErrEmptyCandidate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
