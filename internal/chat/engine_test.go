// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturdaylabs/saturday/internal/chat"
)

// stubClassifier returns a fixed label or error and counts invocations.
type stubClassifier struct {
	label string
	err   error
	calls int
}

func (stub *stubClassifier) Classify(_ context.Context, _ string) (string, error) {
	stub.calls++
	return stub.label, stub.err
}

// hangingClassifier blocks until the context expires, simulating a stuck model.
type hangingClassifier struct{}

func (hangingClassifier) Classify(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func newTestEngine(model chat.Classifier) *chat.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return chat.NewEngine(model, chat.NewResponseBank(), chat.NewMemory(), 50*time.Millisecond, logger)
}

/*
TestEngine_GreetingShortCircuit verifies that greetings skip the classifier
entirely and are never recorded in memory.
*/
func TestEngine_GreetingShortCircuit(t *testing.T) {
	model := &stubClassifier{label: "joy"}
	engine := newTestEngine(model)

	result := engine.Dispatch(context.Background(), "key-1", "good morning")

	assert.Equal(t, chat.LabelGreeting, result.Label)
	assert.NotEmpty(t, result.Reply)
	assert.Zero(t, model.calls, "greeting must not reach the classifier")
	assert.Zero(t, engine.Memory().Len("key-1"), "greeting must not be recorded")
}

/*
TestEngine_ModelLabelFlowsThrough verifies the happy path: model label, curated
reply, and a recorded turn.
*/
func TestEngine_ModelLabelFlowsThrough(t *testing.T) {
	engine := newTestEngine(&stubClassifier{label: "excitement"})

	result := engine.Dispatch(context.Background(), "key-2", "we won the championship")

	assert.Equal(t, "excitement", result.Label)
	assert.Equal(t, "That's so exciting! 🎉 Tell me more!", result.Reply)

	history := engine.Memory().History("key-2")
	require.Len(t, history, 1)
	assert.Equal(t, "we won the championship", history[0].UserText)
	assert.Equal(t, result.Reply, history[0].BotText)
	assert.Equal(t, "excitement", history[0].Label)
	assert.WithinDuration(t, time.Now(), history[0].Timestamp, time.Second)
}

/*
TestEngine_ModelErrorFallsBack verifies silent degradation to the keyword
rules when the model errors out.
*/
func TestEngine_ModelErrorFallsBack(t *testing.T) {
	engine := newTestEngine(&stubClassifier{err: chat.ErrUnavailable})

	result := engine.Dispatch(context.Background(), "key-3", "I feel so sad and lonely")

	assert.Equal(t, "sadness", result.Label)
	assert.Equal(t, "I'm here for you. 💙 Want to share what's making you sad?", result.Reply)
	assert.Equal(t, 1, engine.Memory().Len("key-3"))
}

/*
TestEngine_ModelTimeoutFallsBack verifies that a hung model is cut off by the
classify timeout and the fallback answers instead.
*/
func TestEngine_ModelTimeoutFallsBack(t *testing.T) {
	engine := newTestEngine(hangingClassifier{})

	start := time.Now()
	result := engine.Dispatch(context.Background(), "key-4", "I am so happy today!")

	assert.Equal(t, "joy", result.Label)
	assert.Less(t, time.Since(start), 5*time.Second, "timeout must bound the model call")
}

/*
TestEngine_NoModelConfigured verifies the engine is fully functional on the
keyword rules alone.
*/
func TestEngine_NoModelConfigured(t *testing.T) {
	engine := newTestEngine(nil)

	result := engine.Dispatch(context.Background(), "key-5", "I am so happy today!")

	assert.Equal(t, "joy", result.Label)
	assert.Equal(t, "That's wonderful news! 😄 What brought you so much joy?", result.Reply)
	assert.Equal(t, 1, engine.Memory().Len("key-5"))
}

/*
TestEngine_UnknownModelLabel verifies that an unrecognized model label is kept
as reported while the reply comes from the generic pool.
*/
func TestEngine_UnknownModelLabel(t *testing.T) {
	engine := newTestEngine(&stubClassifier{label: "bittersweet"})

	result := engine.Dispatch(context.Background(), "key-6", "graduation day was a lot")

	assert.Equal(t, "bittersweet", result.Label)
	assert.NotEmpty(t, result.Reply)

	history := engine.Memory().History("key-6")
	require.Len(t, history, 1)
	assert.Equal(t, "bittersweet", history[0].Label)
}
