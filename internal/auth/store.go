// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package auth

import (
	"context"
	"time"
)

// # Account Data Access

// AccountRepository defines the data access contract for user accounts.
//
// # Atomicity
//
// Create must be atomic with respect to the unique-email invariant: of two
// concurrent creates for the same email, exactly one succeeds and the other
// receives a CONFLICT error. Implementations rely on a store-level uniqueness
// constraint, never a check-then-insert in application code.
type AccountRepository interface {

	/*
		Create persists a brand-new account.

		Parameters:
		  - ctx: context.Context
		  - account: *Account

		Returns:
		  - error: apperr CONFLICT if the email is taken, or persistence failures
	*/
	Create(ctx context.Context, account *Account) error

	/*
		FindByEmail returns the active account with the given email.
		The match is case-sensitive; email is the natural login key.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr NOT_FOUND if absent or inactive
	*/
	FindByEmail(ctx context.Context, email string) (*Account, error)

	/*
		FindByID returns the active account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr NOT_FOUND if absent or inactive
	*/
	FindByID(ctx context.Context, id string) (*Account, error)

	/*
		TouchLastLogin records a successful login timestamp.

		Parameters:
		  - ctx: context.Context
		  - id: string
		  - at: time.Time

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(ctx context.Context, id string, at time.Time) error

	/*
		Deactivate soft-disables the account without removing the row.
		Existing sessions become invalid through the Validate active-check.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Deactivate(ctx context.Context, id string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for login sessions.
type SessionRepository interface {

	/*
		Create persists a new session for an authenticated login.

		Parameters:
		  - ctx: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, session *Session) error

	/*
		FindByToken returns the session for the given token.

		Description: The lookup is self-cleaning — an expired row encountered
		on read is evicted and reported exactly like an unknown token, so
		"not found" and "found but expired" are externally indistinguishable.

		Parameters:
		  - ctx: context.Context
		  - token: string

		Returns:
		  - *Session: Hydrated entity, guaranteed unexpired at read time
		  - error: apperr NOT_FOUND for unknown or expired tokens
	*/
	FindByToken(ctx context.Context, token string) (*Session, error)

	/*
		Delete removes a session. Deleting an absent token is not an error.

		Parameters:
		  - ctx: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, token string) error

	/*
		DeleteExpired physically removes sessions whose expiry precedes now.

		Parameters:
		  - ctx: context.Context
		  - now: time.Time

		Returns:
		  - int64: Number of sessions removed
		  - error: Persistence failures
	*/
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
