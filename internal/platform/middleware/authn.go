// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

// Session-token authentication middleware.
//
// # Architecture
//
// Authentication is split from the rest of the chain because it is the only
// middleware with a domain dependency. The [SessionValidator] interface keeps
// that dependency pointing inward (auth implements it, middleware consumes it).

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/saturdaylabs/saturday/internal/platform/apperr"
	"github.com/saturdaylabs/saturday/internal/platform/constants"
	"github.com/saturdaylabs/saturday/internal/platform/ctxutil"
	"github.com/saturdaylabs/saturday/internal/platform/respond"
	"github.com/saturdaylabs/saturday/internal/platform/sec"
)

// SessionValidator defines the interface needed to resolve session tokens in middleware.
//
// # Why an interface?
//
// Defining SessionValidator here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit testing.
//
// # Semantics
//
// Validate must perform the self-cleaning store lookup: an expired token is
// evicted on read and reported exactly like an unknown one.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*sec.Identity, error)
}

// Authenticate extracts and resolves the session token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous (chat does not require login).
//  3. If present, resolve the token against the session store via [SessionValidator].
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// # Parameters
//   - validator: The SessionValidator instance.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.SessionHeader)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Session Resolution ─────────────────────────────────────────
			token := parts[1]
			identity, err := validator.Validate(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
