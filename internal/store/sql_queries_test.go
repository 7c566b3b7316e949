// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/migrations"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryDB(dialect string) *DB {
	return newDB(nil, dialect, logger.Nop())
}

func strPtr(s string) *string { return &s }

func Test_buildSelectCredentialByTupleQuery(t *testing.T) {
	identity := models.Identity{UserID: 1, TenantID: 2}

	tests := []struct {
		name         string
		input        models.CredentialInput
		wantContains []string
		wantArgs     []any
	}{
		{
			name:  "absent optional fields match only NULL",
			input: models.CredentialInput{Category: models.CategoryDevice, Name: "router"},
			wantContains: []string{
				"account_name IS NULL",
				"url IS NULL",
				"category = $1",
				"name = $2",
				"tenant_id = $3",
				"user_id = $4",
			},
			wantArgs: []any{"device", "router", int64(2), int64(1)},
		},
		{
			name: "present optional fields are compared by value",
			input: models.CredentialInput{
				Category:    models.CategoryApplication,
				Name:        "mail",
				URL:         strPtr("https://mail.example.com"),
				AccountName: strPtr("alice"),
			},
			wantContains: []string{
				"account_name = $1",
				"url = $5",
			},
			wantArgs: []any{"alice", "application", "mail", int64(2), "https://mail.example.com", int64(1)},
		},
		{
			name:         "empty string is not NULL",
			input:        models.CredentialInput{Category: models.CategoryDevice, Name: "nas", URL: strPtr("")},
			wantContains: []string{"account_name IS NULL", "url = $4"},
			wantArgs:     []any{"device", "nas", int64(2), "", int64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := queryDB(migrations.DialectPostgres).buildSelectCredentialByTupleQuery(identity, tt.input)
			require.NoError(t, err)

			for _, part := range tt.wantContains {
				assert.Contains(t, query, part)
			}
			assert.True(t, strings.HasSuffix(query, "ORDER BY id LIMIT 1"), query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_placeholderFormatPerDialect(t *testing.T) {
	ref := models.EntryRef{EntryID: 5, UserID: 1, TenantID: 2}

	pgQuery, _, err := queryDB(migrations.DialectPostgres).buildSelectOwnedCredentialQuery(ref)
	require.NoError(t, err)
	assert.Contains(t, pgQuery, "$1")
	assert.NotContains(t, pgQuery, "?")

	liteQuery, args, err := queryDB(migrations.DialectSQLite).buildSelectOwnedCredentialQuery(ref)
	require.NoError(t, err)
	assert.Contains(t, liteQuery, "id = ?")
	assert.NotContains(t, liteQuery, "$")
	assert.Equal(t, []any{int64(5), int64(2), int64(1)}, args)
}

func Test_buildSelectHistoryQuery_NewestFirst(t *testing.T) {
	query, args, err := queryDB(migrations.DialectPostgres).buildSelectHistoryQuery(9)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, credential_id, secret_value, created_at FROM credential_history WHERE credential_id = $1 ORDER BY created_at DESC, id DESC",
		query)
	assert.Equal(t, []any{int64(9)}, args)
}

func Test_buildSelectCredentialsByOwnerQuery_InsertionOrder(t *testing.T) {
	query, args, err := queryDB(migrations.DialectPostgres).buildSelectCredentialsByOwnerQuery(1, 2)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(query, "ORDER BY id"), query)
	assert.Equal(t, []any{int64(2), int64(1)}, args)
}

func Test_buildInsertQueriesReturnID(t *testing.T) {
	db := queryDB(migrations.DialectSQLite)

	tenantQuery, _, err := db.buildInsertTenantQuery("t", fixedNow)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(tenantQuery, "RETURNING id"))

	userQuery, _, err := db.buildInsertUserQuery(models.User{Email: "a@b.c"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(userQuery, "RETURNING id"))

	entryQuery, args, err := db.buildInsertCredentialQuery(models.CredentialEntry{
		TenantID: 2, UserID: 1, Category: models.CategoryDevice, Name: "router", SecretValue: "abc",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(entryQuery, "RETURNING id"))
	require.Len(t, args, 9)
	assert.Equal(t, "device", args[2])
}

func Test_buildDeleteQueries(t *testing.T) {
	db := queryDB(migrations.DialectPostgres)

	historyQuery, args, err := db.buildDeleteHistoryQuery(5)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM credential_history WHERE credential_id = $1", historyQuery)
	assert.Equal(t, []any{int64(5)}, args)

	entryQuery, args, err := db.buildDeleteCredentialQuery(models.EntryRef{EntryID: 5, UserID: 1, TenantID: 2})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM credentials WHERE id = $1 AND tenant_id = $2 AND user_id = $3", entryQuery)
	assert.Equal(t, []any{int64(5), int64(2), int64(1)}, args)
}
