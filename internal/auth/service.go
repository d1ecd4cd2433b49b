// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

/*
Auth service — the state machine over an Account + Session pair.

States per account: unregistered → active → (deactivated).
States per token:   absent → valid → (expired | revoked); expired and revoked
both collapse to "absent" from the caller's perspective.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Validate).
  - Repository: Abstracted interfaces for PostgreSQL (Accounts, Sessions).
  - Security: Argon2id key derivation with a unique random salt per account.
*/

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saturdaylabs/saturday/internal/platform/apperr"
	"github.com/saturdaylabs/saturday/internal/platform/constants"
	"github.com/saturdaylabs/saturday/internal/platform/sec"
)

// # Error Taxonomy

var (
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = apperr.Conflict("Email is already registered")

	// ErrInvalidCredentials is the single, unified login failure. Unknown
	// email, deactivated account, and wrong password all produce this exact
	// value so callers cannot enumerate registered addresses.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")

	// ErrInvalidSession is returned for absent, expired, or orphaned tokens.
	ErrInvalidSession = apperr.Unauthorized("Invalid or expired session")
)

// Service implements the identity and session lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(accountRepo AccountRepository, sessionRepo SessionRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
	Name     string // Optional; defaults to the local part of the email.
}

/*
Register validates, hashes, and persists a brand new account.

Description: Derives an argon2id hash under a fresh per-account salt and
creates the account. Registration does NOT imply login — no session is issued.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Profile: Public view of the created account
  - error: ErrDuplicateEmail if the email exists, or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Profile, error) {

	// Default the display name to the local part of the email.
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name, _, _ = strings.Cut(input.Email, "@")
	}

	// Prevent storing plain-text passwords. Each account gets its own random
	// salt so identical passwords never share a hash.
	hash, salt, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	account := &Account{
		ID:           newID(), // Time-sortable ID to prevent PG index fragmentation.
		Email:        input.Email,
		PasswordHash: hash,
		Salt:         salt,
		Name:         name,
		IsActive:     true,
	}

	// The store's uniqueness constraint is the arbiter for concurrent
	// registrations: exactly one create wins, the rest conflict.
	if err := service.accountRepository.Create(ctx, account); err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "CONFLICT" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("account_registered", slog.String("account_id", account.ID))

	return account.Profile(), nil
}

// # Authentication Flow

// LoginResult represents a successfully established login session.
type LoginResult struct {
	Token     string        `json:"session_token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Account   *sec.Identity `json:"user"`
}

/*
Login validates credentials and issues a session token.

Description: Verifies identity with a constant-time hash comparison, records
last_login, and creates a session with a fixed 24h expiry.

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - *LoginResult: Bearer token, expiry, and the public account view
  - err: ErrInvalidCredentials or internal failures
*/
func (service *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {

	// Unknown email and inactive account are indistinguishable from a wrong
	// password: all three collapse into ErrInvalidCredentials.
	account, err := service.accountRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash, account.Salt) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := service.accountRepository.TouchLastLogin(ctx, account.ID, now); err != nil {
		return nil, fmt.Errorf("auth_service_touch_last_login_failed: %w", err)
	}

	token, err := sec.GenerateSecureToken(constants.SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	session := &Session{
		Token:     token,
		AccountID: account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(constants.SessionTTL), // Fixed offset, not sliding.
	}

	if err := service.sessionRepository.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	service.logger.Info("account_logged_in", slog.String("account_id", account.ID))

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Account:   account.Identity(),
	}, nil
}

/*
Logout destroys the session for the given token.

Description: Idempotent — deleting an absent or already-expired token is not
an error and reports success.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - err: Storage failures only
*/
func (service *Service) Logout(ctx context.Context, token string) error {
	if err := service.sessionRepository.Delete(ctx, token); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Validation

/*
Validate resolves a session token into a public account view.

Description: The gate used by any operation needing identity. A session is
valid iff it exists, its owning account is active, and the current time has
not passed its expiry. The lookup is self-cleaning: expired and orphaned
sessions encountered here are purged before reporting invalid. Once a token
has expired the answer is monotonic — it can never flip back to valid.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - *sec.Identity: Public account view (id, email, name)
  - err: ErrInvalidSession
*/
func (service *Service) Validate(ctx context.Context, token string) (*sec.Identity, error) {
	session, err := service.sessionRepository.FindByToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	// Defense in depth: the repository already evicts expired rows on read,
	// but a fake or cache-backed implementation may not. Enforce here too.
	if session.Expired(time.Now()) {
		_ = service.sessionRepository.Delete(ctx, token)
		return nil, ErrInvalidSession
	}

	account, err := service.accountRepository.FindByID(ctx, session.AccountID)
	if err != nil {
		// Orphaned session: the owning account is gone or deactivated.
		// Purge lazily so the token dies with its account.
		_ = service.sessionRepository.Delete(ctx, token)
		return nil, ErrInvalidSession
	}

	return account.Identity(), nil
}

// # Profile & Lifecycle

/*
GetProfile returns the public view of an account.

Description: Callers must pass only an account ID yielded by Validate —
never a client-supplied ID.

Parameters:
  - ctx: context.Context
  - accountID: string

Returns:
  - *Profile: Public view
  - err: apperr NOT_FOUND if the account is missing or inactive
*/
func (service *Service) GetProfile(ctx context.Context, accountID string) (*Profile, error) {
	account, err := service.accountRepository.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Profile(), nil
}

/*
Deactivate soft-disables an account.

Description: The row is retained (emails are never reused), but the account
can no longer log in and its existing sessions fail Validate's active-check,
after which they are lazily purged.

Parameters:
  - ctx: context.Context
  - accountID: string

Returns:
  - err: Storage failures
*/
func (service *Service) Deactivate(ctx context.Context, accountID string) error {
	if err := service.accountRepository.Deactivate(ctx, accountID); err != nil {
		return fmt.Errorf("auth_service_deactivate_failed: %w", err)
	}
	service.logger.Info("account_deactivated", slog.String("account_id", accountID))
	return nil
}

// # Session Sweeping

/*
CleanupExpired eagerly purges every session past its expiry.

Description: Safe to call concurrently with any other operation — lazy
lookups and the sweep race harmlessly because both only ever delete rows
that can never become valid again.

Parameters:
  - ctx: context.Context
  - now: time.Time

Returns:
  - int64: Number of sessions removed
  - err: Storage failures
*/
func (service *Service) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := service.sessionRepository.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("auth_service_cleanup_failed: %w", err)
	}
	return count, nil
}

// RunSweeper periodically calls CleanupExpired until the context is cancelled.
// Intended to run as a background goroutine from main.
func (service *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count, err := service.CleanupExpired(ctx, time.Now())
			if err != nil {
				service.logger.Error("session_sweep_failed", slog.Any("error", err))
				continue
			}
			if count > 0 {
				service.logger.Info("session_sweep_completed", slog.Int64("purged", count))
			}
		case <-ctx.Done():
			return
		}
	}
}

// # Bootstrap

// Bootstrap ensures a seed account exists, ignoring the duplicate case.
// Used at startup when BOOTSTRAP_EMAIL is configured.
func (service *Service) Bootstrap(ctx context.Context, email, password, name string) error {
	_, err := service.Register(ctx, RegisterInput{Email: email, Password: password, Name: name})
	if err != nil && !errors.Is(err, ErrDuplicateEmail) {
		return fmt.Errorf("auth_service_bootstrap_failed: %w", err)
	}
	return nil
}
