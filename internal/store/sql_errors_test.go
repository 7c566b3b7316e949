package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: Unclassified},
		{name: "plain error", err: errors.New("boom"), want: Unclassified},
		{name: "unique", err: pgError(pgerrcode.UniqueViolation), want: UniqueViolation},
		{name: "foreign key", err: pgError(pgerrcode.ForeignKeyViolation), want: ForeignKeyViolation},
		{name: "check", err: pgError(pgerrcode.CheckViolation), want: CheckViolation},
		{name: "wrapped unique", err: fmt.Errorf("%w: %w", ErrExecutingQuery, pgError(pgerrcode.UniqueViolation)), want: UniqueViolation},
		{name: "other pg code", err: pgError(pgerrcode.SerializationFailure), want: Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	classifier := NewSQLiteErrorClassifier()

	liteErr := func(code sqlite3.ErrNoExtended) error {
		return sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: code}
	}

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: Unclassified},
		{name: "plain error", err: errors.New("boom"), want: Unclassified},
		{name: "unique", err: liteErr(sqlite3.ErrConstraintUnique), want: UniqueViolation},
		{name: "primary key", err: liteErr(sqlite3.ErrConstraintPrimaryKey), want: UniqueViolation},
		{name: "foreign key", err: liteErr(sqlite3.ErrConstraintForeignKey), want: ForeignKeyViolation},
		{name: "check", err: liteErr(sqlite3.ErrConstraintCheck), want: CheckViolation},
		{name: "not null", err: liteErr(sqlite3.ErrConstraintNotNull), want: Unclassified},
		{name: "wrapped", err: fmt.Errorf("insert: %w", liteErr(sqlite3.ErrConstraintUnique)), want: UniqueViolation},
		{name: "postgres error", err: pgError(pgerrcode.UniqueViolation), want: Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.err))
		})
	}
}

func TestDB_ClassifyWithoutClassifier(t *testing.T) {
	db := &DB{}
	assert.Equal(t, Unclassified, db.classify(pgError(pgerrcode.UniqueViolation)))
}
