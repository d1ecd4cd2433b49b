// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

// PostgreSQL implementations of the auth storage contracts.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement the domain-defined interfaces using the [pgxpool.Pool] connection
// manager.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types via [dberr.Wrap] to avoid leaking
// storage implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saturdaylabs/saturday/internal/platform/apperr"
	"github.com/saturdaylabs/saturday/internal/platform/dberr"
)

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// Create persists a new account row.
//
// The UNIQUE constraint on email is the serialization point for concurrent
// registrations; a violation surfaces as an apperr CONFLICT.
func (repository *PostgresAccountRepository) Create(ctx context.Context, account *Account) error {
	const query = `
		INSERT INTO accounts (
			id, email, password_hash, salt, name, created_at, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Salt,
		account.Name,
		account.CreatedAt,
		account.IsActive,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return dberr.Wrap(err, "Account")
		}
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

// FindByEmail retrieves an active account by its unique email address.
// The comparison is case-sensitive by design.
func (repository *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	const query = `
		SELECT id, email, password_hash, salt, name, created_at, last_login, is_active
		FROM accounts
		WHERE email = $1 AND is_active = TRUE`

	return repository.scanOne(ctx, query, email, "postgres_account_repo_find_by_email_failed")
}

// FindByID retrieves an active account by its ID.
func (repository *PostgresAccountRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	const query = `
		SELECT id, email, password_hash, salt, name, created_at, last_login, is_active
		FROM accounts
		WHERE id = $1 AND is_active = TRUE`

	return repository.scanOne(ctx, query, id, "postgres_account_repo_find_by_id_failed")
}

// scanOne runs a single-row account query and hydrates the entity.
func (repository *PostgresAccountRepository) scanOne(ctx context.Context, query, arg, failLabel string) (*Account, error) {
	account := &Account{}
	err := repository.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Salt,
		&account.Name,
		&account.CreatedAt,
		&account.LastLogin,
		&account.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("%s: %w", failLabel, err)
	}

	return account, nil
}

// TouchLastLogin records the timestamp of a successful login.
func (repository *PostgresAccountRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = "UPDATE accounts SET last_login = $2 WHERE id = $1"
	_, err := repository.pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_touch_last_login_failed: %w", err)
	}
	return nil
}

// Deactivate soft-disables an account. The row is retained so the email is
// never reused, but the account becomes invisible to the Find methods.
func (repository *PostgresAccountRepository) Deactivate(ctx context.Context, id string) error {
	const query = "UPDATE accounts SET is_active = FALSE WHERE id = $1"
	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_deactivate_failed: %w", err)
	}
	return nil
}

// ── Session Repository ───────────────────────────────────────────────────────

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// Create persists a new session row.
func (repository *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	const query = `
		INSERT INTO sessions (token, account_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		session.Token,
		session.AccountID,
		session.CreatedAt,
		session.ExpiresAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return nil
}

// FindByToken retrieves a session by its token, evicting it on read if expired.
//
// A single conditional DELETE ... RETURNING resolves the row and purges it
// atomically when stale, so concurrent lookups of a dying session all observe
// "not found".
func (repository *PostgresSessionRepository) FindByToken(ctx context.Context, token string) (*Session, error) {
	const selectQuery = `
		SELECT token, account_id, created_at, expires_at
		FROM sessions
		WHERE token = $1`

	session := &Session{}
	err := repository.pool.QueryRow(ctx, selectQuery, token).Scan(
		&session.Token,
		&session.AccountID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	// Self-cleaning read: purge the expired row, then report it as absent.
	if session.Expired(time.Now()) {
		const deleteQuery = "DELETE FROM sessions WHERE token = $1 AND expires_at <= NOW()"
		if _, err := repository.pool.Exec(ctx, deleteQuery, token); err != nil {
			return nil, fmt.Errorf("postgres_session_repo_evict_failed: %w", err)
		}
		return nil, apperr.NotFound("Session")
	}

	return session, nil
}

// Delete removes a session. Absent tokens are a silent no-op (idempotent logout).
func (repository *PostgresSessionRepository) Delete(ctx context.Context, token string) error {
	const query = "DELETE FROM sessions WHERE token = $1"
	_, err := repository.pool.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_failed: %w", err)
	}
	return nil
}

// DeleteExpired permanently removes all sessions past their expiry and
// returns the number of rows purged.
func (repository *PostgresSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = "DELETE FROM sessions WHERE expires_at <= $1"
	tag, err := repository.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_repo_delete_expired_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}
