// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saturdaylabs/saturday/internal/chat"
)

/*
TestIsGreeting covers the two-part rule: short message AND known opener phrase.
*/
func TestIsGreeting(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected bool
	}{
		{"plain_hello", "hello", true},
		{"uppercase", "HELLO", true},
		{"with_punctuation", "hey!", true},
		{"multi_word_opener", "good morning", true},
		{"four_words_containing_opener", "hey, how are you", true},
		{"padded_whitespace", "   hi   ", true},
		{"five_words_with_opener", "hi there my dear friend", false},
		{"long_message_containing_hi", "i wanted to say hi because today was rough", false},
		{"no_opener", "today was rough", false},
		{"empty", "", false},
		{"whitespace_only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, chat.IsGreeting(tt.message))
		})
	}
}

/*
TestNormalize verifies trimming, lowercasing, and Unicode canonicalization.
*/
func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello", chat.Normalize("  HeLLo  "))

	// Decomposed e + combining acute collapses to the precomposed form.
	assert.Equal(t, "café", chat.Normalize("café"))
}
