//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

package store

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// UserRepository persists accounts and their tenants.
type UserRepository interface {
	// CreateUserWithTenant creates a tenant named tenantName and the user
	// belonging to it in one transaction.
	CreateUserWithTenant(ctx context.Context, user models.User, tenantName string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// CredentialRepository persists credential entries and their history.
// Every multi-row mutation runs in a single transaction.
type CredentialRepository interface {
	// Upsert versions the entry matching the logical identity of input or
	// creates a new one. created reports which branch was taken.
	Upsert(ctx context.Context, identity models.Identity, input models.CredentialInput) (entry models.CredentialEntry, created bool, err error)
	ListByOwner(ctx context.Context, identity models.Identity) ([]models.CredentialEntry, error)
	GetOwned(ctx context.Context, ref models.EntryRef) (models.CredentialEntry, error)
	Update(ctx context.Context, ref models.EntryRef, patch models.CredentialPatch) (models.CredentialEntry, error)
	ListHistory(ctx context.Context, ref models.EntryRef) ([]models.HistoryRecord, error)
	// Delete removes the entry and all of its history and returns the
	// number of removed rows.
	Delete(ctx context.Context, ref models.EntryRef) (int64, error)
}

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
