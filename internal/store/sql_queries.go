package store

import (
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	tenantsTable           = "tenants"
	usersTable             = "users"
	credentialsTable       = "credentials"
	credentialHistoryTable = "credential_history"
)

var (
	userColumns = []string{
		"id", "email", "name", "password", "tenant_id", "created_at", "updated_at",
	}

	credentialColumns = []string{
		"id", "tenant_id", "user_id", "category", "name", "url", "account_name",
		"secret_value", "created_at", "updated_at",
	}

	historyColumns = []string{
		"id", "credential_id", "secret_value", "created_at",
	}
)

func (db *DB) buildInsertTenantQuery(name string, now time.Time) (string, []any, error) {
	return db.builder.
		Insert(tenantsTable).
		Columns("name", "created_at").
		Values(name, now).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildInsertUserQuery(user models.User) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns("email", "name", "password", "tenant_id", "created_at", "updated_at").
		Values(user.Email, user.Name, user.PasswordHash, user.TenantID, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildSelectUserQuery(where sq.Eq) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func (db *DB) buildUpdateUserPasswordQuery(userID int64, passwordHash string, now time.Time) (string, []any, error) {
	return db.builder.
		Update(usersTable).
		Set("password", passwordHash).
		Set("updated_at", now).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func (db *DB) buildSelectUserTenantQuery(userID int64) (string, []any, error) {
	return db.builder.
		Select("tenant_id").
		From(usersTable).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// buildSelectCredentialByTupleQuery matches the logical identity of an entry.
// A nil URL or AccountName matches only NULL.
func (db *DB) buildSelectCredentialByTupleQuery(identity models.Identity, input models.CredentialInput) (string, []any, error) {
	return db.builder.
		Select(credentialColumns...).
		From(credentialsTable).
		Where(sq.Eq{
			"user_id":      identity.UserID,
			"tenant_id":    identity.TenantID,
			"category":     string(input.Category),
			"name":         input.Name,
			"url":          input.URL,
			"account_name": input.AccountName,
		}).
		OrderBy("id").
		Limit(1).
		ToSql()
}

func (db *DB) buildInsertCredentialQuery(entry models.CredentialEntry) (string, []any, error) {
	return db.builder.
		Insert(credentialsTable).
		Columns("tenant_id", "user_id", "category", "name", "url", "account_name", "secret_value", "created_at", "updated_at").
		Values(entry.TenantID, entry.UserID, string(entry.Category), entry.Name, entry.URL, entry.AccountName, entry.SecretValue, entry.CreatedAt, entry.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildSelectOwnedCredentialQuery(ref models.EntryRef) (string, []any, error) {
	return db.builder.
		Select(credentialColumns...).
		From(credentialsTable).
		Where(sq.Eq{
			"id":        ref.EntryID,
			"user_id":   ref.UserID,
			"tenant_id": ref.TenantID,
		}).
		ToSql()
}

func (db *DB) buildSelectCredentialsByOwnerQuery(userID, tenantID int64) (string, []any, error) {
	return db.builder.
		Select(credentialColumns...).
		From(credentialsTable).
		Where(sq.Eq{"user_id": userID, "tenant_id": tenantID}).
		OrderBy("id").
		ToSql()
}

func (db *DB) buildUpdateCredentialQuery(entry models.CredentialEntry) (string, []any, error) {
	return db.builder.
		Update(credentialsTable).
		Set("name", entry.Name).
		Set("url", entry.URL).
		Set("account_name", entry.AccountName).
		Set("secret_value", entry.SecretValue).
		Set("updated_at", entry.UpdatedAt).
		Where(sq.Eq{"id": entry.ID}).
		ToSql()
}

func (db *DB) buildInsertHistoryQuery(entryID int64, value string, now time.Time) (string, []any, error) {
	return db.builder.
		Insert(credentialHistoryTable).
		Columns("credential_id", "secret_value", "created_at").
		Values(entryID, value, now).
		ToSql()
}

// buildSelectHistoryQuery lists snapshots newest first; id breaks ties
// between snapshots taken within the same clock tick.
func (db *DB) buildSelectHistoryQuery(entryID int64) (string, []any, error) {
	return db.builder.
		Select(historyColumns...).
		From(credentialHistoryTable).
		Where(sq.Eq{"credential_id": entryID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func (db *DB) buildDeleteHistoryQuery(entryID int64) (string, []any, error) {
	return db.builder.
		Delete(credentialHistoryTable).
		Where(sq.Eq{"credential_id": entryID}).
		ToSql()
}

func (db *DB) buildDeleteCredentialQuery(ref models.EntryRef) (string, []any, error) {
	return db.builder.
		Delete(credentialsTable).
		Where(sq.Eq{
			"id":        ref.EntryID,
			"user_id":   ref.UserID,
			"tenant_id": ref.TenantID,
		}).
		ToSql()
}
