// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

// HTTP transport for the chat domain.

package chat

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/saturdaylabs/saturday/internal/platform/ctxutil"
	"github.com/saturdaylabs/saturday/internal/platform/respond"
	"github.com/saturdaylabs/saturday/internal/platform/validate"
)

// maxMessageLen bounds inbound chat messages, counted in Unicode characters.
const maxMessageLen = 2000

// Handler exposes the dispatch engine over HTTP.
type Handler struct {
	engine *Engine
}

// NewHandler creates the HTTP handler for the chat domain.
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Routes assembles the chat router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.chat)
	router.Get("/{sessionKey}/history", handler.history)
	return router
}

type chatRequest struct {
	Message string `json:"message"`

	// SessionKey scopes anonymous conversations. Ignored for authenticated
	// requests, which are always keyed by account.
	SessionKey string `json:"session_key"`
}

// chatResponse is the wire shape the SPA renders a bubble from.
type chatResponse struct {
	UserMessage      string `json:"user_message"`
	PredictedEmotion string `json:"predicted_emotion"`
	BotResponse      string `json:"bot_response"`
}

// chat handles POST /. Dispatches one message through the cascade.
func (handler *Handler) chat(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Decode ─────────────────────────────────────────────────────────
	var payload chatRequest
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		Required("message", payload.Message).
		Custom("message", utf8.RuneCountInString(payload.Message) > maxMessageLen, "Message too long")

	key := handler.conversationKey(request, payload.SessionKey)
	validator.Required("session_key", key)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Dispatch ───────────────────────────────────────────────────────
	result := handler.engine.Dispatch(request.Context(), key, payload.Message)

	respond.OK(writer, chatResponse{
		UserMessage:      payload.Message,
		PredictedEmotion: result.Label,
		BotResponse:      result.Reply,
	})
}

// history handles GET /{sessionKey}/history. Returns the recorded transcript
// for the conversation key in append order.
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "sessionKey")
	if key == "" {
		respond.Error(writer, request, validate.RequiredError("sessionKey", "This field is required"))
		return
	}

	turns := handler.engine.Memory().History(key)

	respond.OK(writer, map[string]interface{}{
		"session_key": key,
		"turns":       turns,
		"emotions":    handler.engine.Memory().Labels(key),
	})
}

// conversationKey resolves which transcript a request belongs to.
// Authenticated requests are keyed by account so a member keeps one
// continuous conversation across devices; anonymous requests supply their
// own key.
func (handler *Handler) conversationKey(request *http.Request, fallbackKey string) string {
	if identity := ctxutil.GetIdentity(request.Context()); identity != nil {
		return identity.AccountID
	}
	return fallbackKey
}
