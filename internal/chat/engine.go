// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat

import (
	"context"
	"log/slog"
	"time"
)

// LabelGreeting marks turns answered by the greeting short-circuit rather
// than the classifier.
const LabelGreeting = "greeting"

// Result is the outcome of dispatching one message.
type Result struct {
	Label string
	Reply string
}

// Engine runs the per-message dispatch cascade.
//
// # Cascade
//
//  1. Greeting check: short openers are answered from the greeting pool and
//     never recorded in memory or classified.
//  2. Model classification, bounded by classifyTimeout.
//  3. Keyword fallback when the model errors out or times out. The caller
//     never learns which path produced the label.
//  4. Reply selection from the response bank.
//  5. Memory append. Classification always completes before the conversation
//     lock is taken, so a slow model call never blocks other conversations.
type Engine struct {
	model           Classifier
	fallback        *RuleClassifier
	bank            *ResponseBank
	memory          *Memory
	classifyTimeout time.Duration
	logger          *slog.Logger
}

// NewEngine wires the dispatch cascade.
//
// model may be nil when no remote classifier is configured; the engine then
// runs purely on the keyword fallback.
func NewEngine(model Classifier, bank *ResponseBank, memory *Memory, classifyTimeout time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		model:           model,
		fallback:        NewRuleClassifier(),
		bank:            bank,
		memory:          memory,
		classifyTimeout: classifyTimeout,
		logger:          logger,
	}
}

// Memory exposes the underlying conversation store for history reads.
func (engine *Engine) Memory() *Memory {
	return engine.memory
}

// Dispatch runs one message through the cascade and returns the label and reply.
//
// Dispatch is total: given non-empty input it always produces a reply, no
// matter which downstream dependencies are unavailable.
func (engine *Engine) Dispatch(ctx context.Context, conversationKey, text string) *Result {

	// ── 1. Greeting Short-Circuit ─────────────────────────────────────────
	// Greetings skip classification entirely and leave no trace in memory;
	// the transcript holds substantive turns only.
	if IsGreeting(text) {
		return &Result{
			Label: LabelGreeting,
			Reply: engine.bank.Greeting(),
		}
	}

	// ── 2. Classification ─────────────────────────────────────────────────
	label := engine.classify(ctx, text)

	// ── 3. Reply Selection ────────────────────────────────────────────────
	if !engine.bank.Knows(label) {
		// A newer model may emit labels this build has no curated reply for.
		// ForLabel answers from the generic pool; keep the label as reported.
		engine.logger.Info("chat_unknown_label", slog.String("label", label))
	}
	reply := engine.bank.ForLabel(label)

	// ── 4. Memory Append ──────────────────────────────────────────────────
	engine.memory.Append(conversationKey, Turn{
		UserText:  text,
		BotText:   reply,
		Label:     label,
		Timestamp: time.Now(),
	})

	return &Result{Label: label, Reply: reply}
}

// classify resolves the emotion label, degrading silently to the keyword
// fallback when the model is absent, slow, or failing.
func (engine *Engine) classify(ctx context.Context, text string) string {
	if engine.model != nil {
		modelCtx, cancel := context.WithTimeout(ctx, engine.classifyTimeout)
		defer cancel()

		label, err := engine.model.Classify(modelCtx, text)
		if err == nil {
			return label
		}
		engine.logger.Warn("chat_classifier_degraded", slog.Any("error", err))
	}

	label, _ := engine.fallback.Classify(ctx, text) // never errors
	return label
}
