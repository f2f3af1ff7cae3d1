package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"electionhub/internal/domain"
)

// schemaSQL is embedded so the service can bootstrap its own tables.
//
//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Postgres error codes mapped to domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRepr     = "22P02"
)

// Constraint names referenced by the vote store.
const (
	constraintVoteOption = "votes_option_fkey"
)

func pqError(err error) (*pq.Error, bool) {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// notFoundOr maps no-rows and malformed uuid lookups to domain.ErrNotFound.
func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if perr, ok := pqError(err); ok && perr.Code == codeInvalidTextRepr {
		return domain.ErrNotFound
	}
	return err
}
