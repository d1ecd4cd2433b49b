// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

// Package sec provides cryptographic primitives and identity plumbing.
//
// # Architecture
//
// This package isolates security-sensitive code (key derivation, token
// generation) from the domain logic. It acts as an Infrastructure service
// used by the Application layer and carries no storage dependencies.
package sec

// Identity is the minimal account view attached to an authenticated request.
//
// # Why not the full account?
//
// Middleware resolves the session token once and exposes only what downstream
// handlers need to authorize and log. The full profile stays behind the
// service layer; the password hash and salt never leave it at all.
type Identity struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}
