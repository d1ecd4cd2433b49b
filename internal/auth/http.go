// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

// HTTP transport for the auth domain.
//
// # Architecture
//
// Handlers are thin: decode the payload, validate at the boundary, delegate to
// the [Service], and translate the outcome through the respond envelope. No
// business rules live here.

package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/saturdaylabs/saturday/internal/platform/apperr"
	"github.com/saturdaylabs/saturday/internal/platform/constants"
	"github.com/saturdaylabs/saturday/internal/platform/ctxutil"
	"github.com/saturdaylabs/saturday/internal/platform/respond"
	"github.com/saturdaylabs/saturday/internal/platform/validate"
)

// Handler exposes the auth service over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the HTTP handler for the auth domain.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the auth router.
//
// Public:    POST /register, POST /login, POST /logout
// Protected: GET /session, GET /profile, DELETE /account
func (handler *Handler) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	router.Group(func(protected chi.Router) {
		protected.Use(requireAuth)
		protected.Get("/session", handler.session)
		protected.Get("/profile", handler.profile)
		protected.Delete("/account", handler.deactivate)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// # Handlers

// register handles POST /register.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Decode ─────────────────────────────────────────────────────────
	var payload registerRequest
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		Required("email", payload.Email).
		Email("email", payload.Email).
		Required("password", payload.Password).
		MinLen("password", payload.Password, 8).
		MaxLen("password", payload.Password, 128).
		MaxLen("name", payload.Name, 100)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Service Call ───────────────────────────────────────────────────
	profile, err := handler.service.Register(request.Context(), RegisterInput{
		Email:    strings.TrimSpace(payload.Email),
		Password: payload.Password,
		Name:     payload.Name,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, profile)
}

// login handles POST /login.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// A malformed login is still answered with the unified credential error,
	// never a field-level hint about which part was wrong.
	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		respond.Error(writer, request, ErrInvalidCredentials)
		return
	}

	result, err := handler.service.Login(request.Context(), strings.TrimSpace(payload.Email), payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// logout handles POST /logout. Always succeeds, even for unknown tokens.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token := bearerToken(request)
	if token == "" {
		// Nothing to revoke. Idempotent success.
		respond.NoContent(writer)
		return
	}

	if err := handler.service.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// session handles GET /session. Reaching this handler means the Authenticate
// middleware already resolved the token, so the context identity is the answer.
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}
	respond.OK(writer, identity)
}

// profile handles GET /profile for the authenticated account.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	profile, err := handler.service.GetProfile(request.Context(), identity.AccountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// deactivate handles DELETE /account. Soft-disables the authenticated account
// and revokes the current session.
func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	if err := handler.service.Deactivate(request.Context(), identity.AccountID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The current token dies with the account; revoke it eagerly rather than
	// waiting for the lazy purge on next use.
	if token := bearerToken(request); token != "" {
		_ = handler.service.Logout(request.Context(), token)
	}

	respond.NoContent(writer)
}

// bearerToken extracts the token from an 'Authorization: Bearer x' header,
// returning "" when the header is absent or malformed.
func bearerToken(request *http.Request) string {
	parts := strings.Split(request.Header.Get(constants.SessionHeader), " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
