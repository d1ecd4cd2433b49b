// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturdaylabs/saturday/internal/auth"
	"github.com/saturdaylabs/saturday/internal/platform/apperr"
)

// # In-Memory Fakes

// fakeAccountRepository mimics the Postgres repository, including the atomic
// unique-email behavior and the active-only visibility of the Find methods.
type fakeAccountRepository struct {
	mutex    sync.Mutex
	byID     map[string]*auth.Account
	idByMail map[string]string
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		byID:     make(map[string]*auth.Account),
		idByMail: make(map[string]string),
	}
}

func (repository *fakeAccountRepository) Create(_ context.Context, account *auth.Account) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if _, taken := repository.idByMail[account.Email]; taken {
		return apperr.Conflict("Account already exists")
	}

	clone := *account
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	repository.byID[clone.ID] = &clone
	repository.idByMail[clone.Email] = clone.ID
	return nil
}

func (repository *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	id, ok := repository.idByMail[email]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return repository.visible(id)
}

func (repository *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.Account, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()
	return repository.visible(id)
}

// visible mirrors the SQL "AND is_active = TRUE" predicate.
func (repository *fakeAccountRepository) visible(id string) (*auth.Account, error) {
	account, ok := repository.byID[id]
	if !ok || !account.IsActive {
		return nil, apperr.NotFound("Account")
	}
	clone := *account
	return &clone, nil
}

func (repository *fakeAccountRepository) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if account, ok := repository.byID[id]; ok {
		account.LastLogin = &at
	}
	return nil
}

func (repository *fakeAccountRepository) Deactivate(_ context.Context, id string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if account, ok := repository.byID[id]; ok {
		account.IsActive = false
	}
	return nil
}

// fakeSessionRepository mimics the Postgres session store, including the
// self-cleaning expired-token eviction on read.
type fakeSessionRepository struct {
	mutex   sync.Mutex
	byToken map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{byToken: make(map[string]*auth.Session)}
}

func (repository *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	clone := *session
	repository.byToken[clone.Token] = &clone
	return nil
}

func (repository *fakeSessionRepository) FindByToken(_ context.Context, token string) (*auth.Session, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	session, ok := repository.byToken[token]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	if session.Expired(time.Now()) {
		delete(repository.byToken, token)
		return nil, apperr.NotFound("Session")
	}
	clone := *session
	return &clone, nil
}

func (repository *fakeSessionRepository) Delete(_ context.Context, token string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()
	delete(repository.byToken, token)
	return nil
}

func (repository *fakeSessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	var purged int64
	for token, session := range repository.byToken {
		if session.Expired(now) {
			delete(repository.byToken, token)
			purged++
		}
	}
	return purged, nil
}

func (repository *fakeSessionRepository) count() int {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()
	return len(repository.byToken)
}

// newTestService wires a service against fresh fakes with a silent logger.
func newTestService() (*auth.Service, *fakeAccountRepository, *fakeSessionRepository) {
	accounts := newFakeAccountRepository()
	sessions := newFakeSessionRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(accounts, sessions, logger), accounts, sessions
}

// # Registration

/*
TestService_Register_DefaultsNameToLocalPart verifies the display name
fallback when no name is supplied.
*/
func TestService_Register_DefaultsNameToLocalPart(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	profile, err := service.Register(ctx, auth.RegisterInput{
		Email:    "alex@saturday.chat",
		Password: "super-secret-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "alex", profile.Name)
	assert.Equal(t, "alex@saturday.chat", profile.Email)
	assert.NotEmpty(t, profile.ID)
	assert.Nil(t, profile.LastLogin)
}

/*
TestService_Register_DuplicateEmail verifies that re-registering an address
fails with the conflict error and does not disturb the original account.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "dup@saturday.chat", Password: "password-one"})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{Email: "dup@saturday.chat", Password: "password-two"})
	require.ErrorIs(t, err, auth.ErrDuplicateEmail)

	// The first credential set still logs in.
	_, err = service.Login(ctx, "dup@saturday.chat", "password-one")
	assert.NoError(t, err)
}

/*
TestService_Register_ConcurrentSameEmail verifies that of N racing
registrations for one address, exactly one wins.
*/
func TestService_Register_ConcurrentSameEmail(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	// Kept small: each Register derives a 64 MiB argon2id hash.
	const racers = 6
	var waitGroup sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		waitGroup.Add(1)
		go func(slot int) {
			defer waitGroup.Done()
			_, errs[slot] = service.Register(ctx, auth.RegisterInput{
				Email:    "race@saturday.chat",
				Password: "password-race",
			})
		}(i)
	}
	waitGroup.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, winners)
}

// # Login

/*
TestService_Login_Roundtrip verifies that registered credentials produce a
usable session token and record last_login.
*/
func TestService_Login_Roundtrip(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "kim@saturday.chat", Password: "secret-password", Name: "Kim"})
	require.NoError(t, err)

	result, err := service.Login(ctx, "kim@saturday.chat", "secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, time.Minute)

	identity, err := service.Validate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "kim@saturday.chat", identity.Email)
	assert.Equal(t, "Kim", identity.Name)

	profile, err := service.GetProfile(ctx, identity.AccountID)
	require.NoError(t, err)
	require.NotNil(t, profile.LastLogin)
}

/*
TestService_Login_UnifiedFailure verifies that unknown email, wrong password,
and deactivated account all produce the identical error value, so responses
cannot be used to enumerate registered addresses.
*/
func TestService_Login_UnifiedFailure(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	profile, err := service.Register(ctx, auth.RegisterInput{Email: "real@saturday.chat", Password: "real-password"})
	require.NoError(t, err)

	_, wrongPassword := service.Login(ctx, "real@saturday.chat", "bad-password")
	_, unknownEmail := service.Login(ctx, "ghost@saturday.chat", "bad-password")

	require.NoError(t, service.Deactivate(ctx, profile.ID))
	_, deactivated := service.Login(ctx, "real@saturday.chat", "real-password")

	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, deactivated, auth.ErrInvalidCredentials)

	// Same value, not merely same type: message and code are identical.
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, wrongPassword, deactivated)
}

/*
TestService_Login_TokensAreUnique verifies that concurrent logins for the same
account each get their own independent session.
*/
func TestService_Login_TokensAreUnique(t *testing.T) {
	service, _, sessions := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "multi@saturday.chat", Password: "multi-password"})
	require.NoError(t, err)

	first, err := service.Login(ctx, "multi@saturday.chat", "multi-password")
	require.NoError(t, err)
	second, err := service.Login(ctx, "multi@saturday.chat", "multi-password")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 2, sessions.count())

	// Logging out one session leaves the other valid.
	require.NoError(t, service.Logout(ctx, first.Token))
	_, err = service.Validate(ctx, first.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
	_, err = service.Validate(ctx, second.Token)
	assert.NoError(t, err)
}

// # Session Lifecycle

/*
TestService_Validate_ExpiredToken verifies that an expired session is
rejected, purged from the store, and never becomes valid again.
*/
func TestService_Validate_ExpiredToken(t *testing.T) {
	service, _, sessions := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "old@saturday.chat", Password: "old-password"})
	require.NoError(t, err)

	result, err := service.Login(ctx, "old@saturday.chat", "old-password")
	require.NoError(t, err)

	// Age the session past its expiry behind the service's back.
	sessions.mutex.Lock()
	sessions.byToken[result.Token].ExpiresAt = time.Now().Add(-time.Minute)
	sessions.mutex.Unlock()

	_, err = service.Validate(ctx, result.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	// Self-cleaning: the dead row is gone.
	assert.Equal(t, 0, sessions.count())

	// Monotonic: repeat validation still fails.
	_, err = service.Validate(ctx, result.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

/*
TestService_Validate_DeactivatedAccount verifies that deactivation kills the
account's live sessions via the lazy purge.
*/
func TestService_Validate_DeactivatedAccount(t *testing.T) {
	service, _, sessions := newTestService()
	ctx := context.Background()

	profile, err := service.Register(ctx, auth.RegisterInput{Email: "gone@saturday.chat", Password: "gone-password"})
	require.NoError(t, err)

	result, err := service.Login(ctx, "gone@saturday.chat", "gone-password")
	require.NoError(t, err)

	require.NoError(t, service.Deactivate(ctx, profile.ID))

	_, err = service.Validate(ctx, result.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
	assert.Equal(t, 0, sessions.count(), "orphaned session should be purged")
}

/*
TestService_Logout_Idempotent verifies that logout of a live, unknown, or
already-revoked token always succeeds.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "bye@saturday.chat", Password: "bye-password"})
	require.NoError(t, err)

	result, err := service.Login(ctx, "bye@saturday.chat", "bye-password")
	require.NoError(t, err)

	assert.NoError(t, service.Logout(ctx, result.Token))
	assert.NoError(t, service.Logout(ctx, result.Token), "second logout of same token")
	assert.NoError(t, service.Logout(ctx, "never-issued-token"))

	_, err = service.Validate(ctx, result.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

/*
TestService_CleanupExpired verifies the eager sweep removes exactly the
expired sessions and reports the count.
*/
func TestService_CleanupExpired(t *testing.T) {
	service, _, sessions := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "sweep@saturday.chat", Password: "sweep-password"})
	require.NoError(t, err)

	live, err := service.Login(ctx, "sweep@saturday.chat", "sweep-password")
	require.NoError(t, err)
	stale, err := service.Login(ctx, "sweep@saturday.chat", "sweep-password")
	require.NoError(t, err)

	sessions.mutex.Lock()
	sessions.byToken[stale.Token].ExpiresAt = time.Now().Add(-time.Hour)
	sessions.mutex.Unlock()

	purged, err := service.CleanupExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = service.Validate(ctx, live.Token)
	assert.NoError(t, err, "live session must survive the sweep")
}

// # Bootstrap

/*
TestService_Bootstrap_IgnoresDuplicate verifies that seeding the same account
twice is a no-op rather than an error.
*/
func TestService_Bootstrap_IgnoresDuplicate(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, service.Bootstrap(ctx, "admin@saturday.chat", "admin-password", "Admin"))
	require.NoError(t, service.Bootstrap(ctx, "admin@saturday.chat", "admin-password", "Admin"))

	_, err := service.Login(ctx, "admin@saturday.chat", "admin-password")
	assert.NoError(t, err)
}
