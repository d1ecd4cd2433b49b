// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

/*
Package chat implements the emotion-aware dispatch pipeline.

Every inbound message flows through a fixed cascade: greeting detection,
emotion classification (remote model with a deterministic keyword fallback),
response selection from the curated bank, and conversation memory recording.

# Architecture

  - Engine: Orchestrates the dispatch cascade per message.
  - Classifier: Pluggable emotion source (HTTP model, Redis-cached, keyword rules).
  - ResponseBank: Curated label-to-reply pools.
  - Memory: Per-conversation in-process transcript store.
*/
package chat

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// greetingKeywords are the phrases recognized as conversational openers.
// Matching is substring containment on the normalized message.
var greetingKeywords = []string{
	"hello",
	"hi",
	"hey",
	"good morning",
	"good evening",
	"good afternoon",
	"how are you",
	"greetings",
	"sup",
	"yo",
}

// greetingMaxWords bounds how long a message can be and still count as a
// greeting. "hey, how are you" greets; a long paragraph containing "hi" does not.
const greetingMaxWords = 4

// Normalize canonicalizes raw chat input: Unicode NFC, trimmed, lowercased.
// All pipeline stages operate on this form so that visually identical
// messages classify identically.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
}

// IsGreeting reports whether the message is a short conversational opener.
//
// A message greets when it has at most four whitespace-separated words AND
// contains one of the known greeting phrases. Both conditions are required.
func IsGreeting(text string) bool {
	normalized := Normalize(text)
	if normalized == "" {
		return false
	}

	if len(strings.Fields(normalized)) > greetingMaxWords {
		return false
	}

	for _, keyword := range greetingKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}

	return false
}
