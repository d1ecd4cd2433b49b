// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

/*
Package auth implements the user identity and session lifecycle layer.

It defines the core domain entities (Account, Session) and logic for
registration, login, session validation, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/saturdaylabs/saturday/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered member of the Saturday platform.
//
// # Rules
//   - Email is unique, case-sensitive, and never reused once assigned.
//   - PasswordHash and Salt are generated exclusively via the auth Service.
//   - Inactive accounts cannot log in, own valid sessions, or be retrieved.
type Account struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Salt         string     `json:"-"` // Per-account random salt. Omitted for security.
	Name         string     `json:"name"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// Identity returns the minimal public view attached to authenticated requests.
// The hash and salt never appear in any outward representation.
func (account *Account) Identity() *sec.Identity {
	return &sec.Identity{
		AccountID: account.ID,
		Email:     account.Email,
		Name:      account.Name,
	}
}

// Profile is the public account view returned by profile lookups.
type Profile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Profile derives the public view from a full account record.
func (account *Account) Profile() *Profile {
	return &Profile{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		CreatedAt: account.CreatedAt,
		LastLogin: account.LastLogin,
	}
}

// Session represents an active login token.
//
// # Security Concept
//
// The token is an opaque bearer credential with 256 bits of CSPRNG entropy.
// Validity is always resolved against the store, so a session can be revoked
// instantly (logout, account deactivation) unlike a stateless signed token.
// Expiry is a fixed offset from creation — never extended on use.
type Session struct {
	Token     string    `json:"-"` // The bearer credential. Omitted for security.
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given instant.
func (session *Session) Expired(now time.Time) bool {
	return now.After(session.ExpiresAt)
}

// newID returns a time-sortable UUIDv7 account ID, falling back to a random
// UUIDv4 if the monotonic source fails.
func newID() string {
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return uuidV7.String()
}
