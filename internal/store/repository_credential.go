// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// credentialRepository is the SQL implementation of [CredentialRepository].
// It owns the "credentials" and "credential_history" tables.
//
// Every write that touches more than one row runs inside [DB.withTx], so a
// history snapshot and the overwrite it precedes commit or roll back
// together.
type credentialRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewCredentialRepository constructs a [CredentialRepository] backed by db.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
		now:    utcNow,
	}
}

// Upsert looks up the entry matching the full identity tuple. A match gets
// its current value appended to history before being overwritten; otherwise
// a new entry without history is created.
//
// The user's tenant is re-read inside the transaction and must equal
// identity.TenantID, else [ErrTenantMismatch] is returned.
func (c *credentialRepository) Upsert(ctx context.Context, identity models.Identity, input models.CredentialInput) (models.CredentialEntry, bool, error) {
	log := logger.FromContext(ctx)

	var (
		entry   models.CredentialEntry
		created bool
	)

	err := c.db.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := c.checkTenant(ctx, tx, identity); err != nil {
			return err
		}

		query, args, err := c.db.buildSelectCredentialByTupleQuery(identity, input)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		existing, err := scanCredential(tx.QueryRowContext(ctx, query, args...))
		switch {
		case errors.Is(err, sql.ErrNoRows):
			entry, err = c.insert(ctx, tx, identity, input)
			created = err == nil
			return err
		case err != nil:
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		entry, err = c.version(ctx, tx, existing, models.CredentialPatch{SecretValue: input.SecretValue})
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrTenantMismatch) {
			log.Err(err).
				Str("func", "*credentialRepository.Upsert").
				Int64("user_id", identity.UserID).
				Int64("tenant_id", identity.TenantID).
				Msg("error upserting credential")
		}
		return models.CredentialEntry{}, false, err
	}

	return entry, created, nil
}

// ListByOwner returns every entry of the user within the tenant in
// insertion order.
func (c *credentialRepository) ListByOwner(ctx context.Context, identity models.Identity) ([]models.CredentialEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := c.db.buildSelectCredentialsByOwnerQuery(identity.UserID, identity.TenantID)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.ListByOwner").Int64("user_id", identity.UserID).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.ListByOwner").Int64("user_id", identity.UserID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.CredentialEntry, 0, 16)
	for rows.Next() {
		entry, scanErr := scanCredential(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*credentialRepository.ListByOwner").Int64("user_id", identity.UserID).Msg("failed to scan credential row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*credentialRepository.ListByOwner").Int64("user_id", identity.UserID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// GetOwned returns the entry addressed by ref or [ErrCredentialNotFound].
func (c *credentialRepository) GetOwned(ctx context.Context, ref models.EntryRef) (models.CredentialEntry, error) {
	entry, err := c.getOwned(ctx, c.db, ref)
	if err != nil && !errors.Is(err, ErrCredentialNotFound) {
		logger.FromContext(ctx).Err(err).
			Str("func", "*credentialRepository.GetOwned").
			Int64("user_id", ref.UserID).
			Int64("entry_id", ref.EntryID).
			Msg("error reading credential")
	}
	return entry, err
}

// Update snapshots the current value into history and applies patch.
func (c *credentialRepository) Update(ctx context.Context, ref models.EntryRef, patch models.CredentialPatch) (models.CredentialEntry, error) {
	var entry models.CredentialEntry

	err := c.db.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		existing, err := c.getOwned(ctx, tx, ref)
		if err != nil {
			return err
		}

		entry, err = c.version(ctx, tx, existing, patch)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrCredentialNotFound) {
			logger.FromContext(ctx).Err(err).
				Str("func", "*credentialRepository.Update").
				Int64("user_id", ref.UserID).
				Int64("tenant_id", ref.TenantID).
				Int64("entry_id", ref.EntryID).
				Msg("error updating credential")
		}
		return models.CredentialEntry{}, err
	}

	return entry, nil
}

// ListHistory returns the snapshots of an owned entry, newest first.
func (c *credentialRepository) ListHistory(ctx context.Context, ref models.EntryRef) ([]models.HistoryRecord, error) {
	var history []models.HistoryRecord

	err := c.db.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		if _, err := c.getOwned(ctx, tx, ref); err != nil {
			return err
		}

		query, args, err := c.db.buildSelectHistoryQuery(ref.EntryID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		history = make([]models.HistoryRecord, 0, 8)
		for rows.Next() {
			var record models.HistoryRecord
			if err := rows.Scan(&record.ID, &record.EntryID, &record.SecretValue, &record.CreatedAt); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			history = append(history, record)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrCredentialNotFound) {
			logger.FromContext(ctx).Err(err).
				Str("func", "*credentialRepository.ListHistory").
				Int64("user_id", ref.UserID).
				Int64("entry_id", ref.EntryID).
				Msg("error reading credential history")
		}
		return nil, err
	}

	return history, nil
}

// Delete removes the history rows and then the entry itself. The order is
// required by the foreign key on credential_history.
func (c *credentialRepository) Delete(ctx context.Context, ref models.EntryRef) (int64, error) {
	var removed int64

	err := c.db.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		if _, err := c.getOwned(ctx, tx, ref); err != nil {
			return err
		}

		query, args, err := c.db.buildDeleteHistoryQuery(ref.EntryID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		historyRows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = c.db.buildDeleteCredentialQuery(ref)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		result, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		entryRows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if entryRows == 0 {
			return ErrCredentialNotFound
		}

		removed = historyRows + entryRows
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrCredentialNotFound) {
			logger.FromContext(ctx).Err(err).
				Str("func", "*credentialRepository.Delete").
				Int64("user_id", ref.UserID).
				Int64("entry_id", ref.EntryID).
				Msg("error deleting credential")
		}
		return 0, err
	}

	return removed, nil
}

func (c *credentialRepository) checkTenant(ctx context.Context, tx DBTX, identity models.Identity) error {
	query, args, err := c.db.buildSelectUserTenantQuery(identity.UserID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var tenantID int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTenantMismatch
		}
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if tenantID != identity.TenantID {
		return ErrTenantMismatch
	}
	return nil
}

func (c *credentialRepository) getOwned(ctx context.Context, q DBTX, ref models.EntryRef) (models.CredentialEntry, error) {
	query, args, err := c.db.buildSelectOwnedCredentialQuery(ref)
	if err != nil {
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entry, err := scanCredential(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CredentialEntry{}, ErrCredentialNotFound
		}
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

func (c *credentialRepository) insert(ctx context.Context, tx DBTX, identity models.Identity, input models.CredentialInput) (models.CredentialEntry, error) {
	now := c.now()
	entry := models.CredentialEntry{
		TenantID:    identity.TenantID,
		UserID:      identity.UserID,
		Category:    input.Category,
		Name:        input.Name,
		URL:         input.URL,
		AccountName: input.AccountName,
		SecretValue: input.SecretValue,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query, args, err := c.db.buildInsertCredentialQuery(entry)
	if err != nil {
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = tx.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

// version appends the current value of existing to history, then writes
// patch over it. Both statements run on tx.
func (c *credentialRepository) version(ctx context.Context, tx DBTX, existing models.CredentialEntry, patch models.CredentialPatch) (models.CredentialEntry, error) {
	now := c.now()

	query, args, err := c.db.buildInsertHistoryQuery(existing.ID, existing.SecretValue, now)
	if err != nil {
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	updated := existing
	patch.Apply(&updated)
	updated.UpdatedAt = now

	query, args, err = c.db.buildUpdateCredentialQuery(updated)
	if err != nil {
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner) (models.CredentialEntry, error) {
	var entry models.CredentialEntry
	err := row.Scan(
		&entry.ID,
		&entry.TenantID,
		&entry.UserID,
		&entry.Category,
		&entry.Name,
		&entry.URL,
		&entry.AccountName,
		&entry.SecretValue,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	return entry, err
}
