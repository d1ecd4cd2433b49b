// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable signals that the emotion source could not produce a label.
// The engine treats it as a soft failure and degrades to the keyword fallback;
// it must never surface to the chat caller.
var ErrUnavailable = errors.New("chat: classifier unavailable")

// Classifier resolves a message into a single emotion label.
//
// # Contract
//
// Classify returns a non-empty lowercase label or an error. Implementations
// must honor ctx cancellation and report any transport, timeout, or protocol
// failure as (or wrapping) [ErrUnavailable] so the engine can degrade.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// HTTPClassifier calls a remote emotion model over HTTP.
//
// The wire contract mirrors the model service: POST {"text": "..."} and
// receive {"label": "..."}.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClassifier creates a classifier bound to the model endpoint.
// The timeout caps the full request round-trip.
func NewHTTPClassifier(endpoint string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label string `json:"label"`
}

// Classify sends the message to the remote model and returns its label.
// Every failure mode (dial, timeout, non-2xx, malformed body, empty label)
// collapses into [ErrUnavailable].
func (classifier *HTTPClassifier) Classify(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrUnavailable, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, classifier.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := classifier.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, response.StatusCode)
	}

	var decoded classifyResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	label := strings.ToLower(strings.TrimSpace(decoded.Label))
	if label == "" {
		return "", fmt.Errorf("%w: empty label", ErrUnavailable)
	}

	return label, nil
}
