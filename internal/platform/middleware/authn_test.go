// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saturdaylabs/saturday/internal/platform/apperr"
	"github.com/saturdaylabs/saturday/internal/platform/ctxutil"
	"github.com/saturdaylabs/saturday/internal/platform/middleware"
	"github.com/saturdaylabs/saturday/internal/platform/sec"
)

// fakeValidator resolves one known token and rejects everything else.
type fakeValidator struct {
	token    string
	identity *sec.Identity
}

func (validator *fakeValidator) Validate(_ context.Context, token string) (*sec.Identity, error) {
	if token == validator.token {
		return validator.identity, nil
	}
	return nil, apperr.Unauthorized("Invalid or expired session")
}

// identityEcho records the identity the middleware injected.
func identityEcho(captured **sec.Identity) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate covers anonymous pass-through, valid tokens, bad tokens, and
malformed headers.
*/
func TestAuthenticate(t *testing.T) {
	validator := &fakeValidator{
		token:    "good-token",
		identity: &sec.Identity{AccountID: "acc-1", Email: "a@saturday.chat"},
	}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectIdentity bool
	}{
		{"anonymous_passes_through", "", http.StatusOK, false},
		{"valid_token_injects_identity", "Bearer good-token", http.StatusOK, true},
		{"unknown_token_rejected", "Bearer bad-token", http.StatusUnauthorized, false},
		{"malformed_header_rejected", "good-token", http.StatusUnauthorized, false},
		{"wrong_scheme_rejected", "Basic good-token", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *sec.Identity
			handler := middleware.Authenticate(validator)(identityEcho(&captured))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if tt.expectIdentity {
				assert.NotNil(t, captured)
				assert.Equal(t, "acc-1", captured.AccountID)
			} else {
				assert.Nil(t, captured)
			}
		})
	}
}

/*
TestRequireAuth verifies the protected-route gate.
*/
func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAuth(next)

	// 1. Without identity: 401
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. With identity: passes
	ctx := ctxutil.WithIdentity(context.Background(), &sec.Identity{AccountID: "acc-1"})
	request := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
