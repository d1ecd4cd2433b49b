// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saturdaylabs/saturday/internal/chat"
)

/*
TestResponseBank_ForLabel verifies curated replies and the generic fallback
for unknown labels.
*/
func TestResponseBank_ForLabel(t *testing.T) {
	bank := chat.NewResponseBank()

	assert.Equal(t, "That's wonderful news! 😄 What brought you so much joy?", bank.ForLabel("joy"))
	assert.Equal(t, "I'm here for you. 💙 Want to share what's making you sad?", bank.ForLabel("sadness"))
	assert.Equal(t, "Alright! 🙂 Tell me more if you want!", bank.ForLabel("neutral"))

	// An unrecognized label still yields a reply from the generic pool.
	reply := bank.ForLabel("some-future-model-label")
	assert.NotEmpty(t, reply)
	assert.False(t, bank.Knows("some-future-model-label"))
}

/*
TestResponseBank_Knows verifies label membership used by the engine.
*/
func TestResponseBank_Knows(t *testing.T) {
	bank := chat.NewResponseBank()

	for _, label := range []string{"joy", "sadness", "anger", "grief", "neutral", "jealousy", "guilt"} {
		assert.True(t, bank.Knows(label), label)
	}
	assert.False(t, bank.Knows("greeting"), "greetings have their own pool")
	assert.False(t, bank.Knows(""))
}

/*
TestResponseBank_Greeting verifies every pick comes from the greeting pool.
*/
func TestResponseBank_Greeting(t *testing.T) {
	bank := chat.NewResponseBank()

	expected := map[string]bool{
		"Hey there! 👋 How's your day going?":                            true,
		"Hello! 😊 Hope you're doing well. How can I support you today?": true,
		"Hi! ✨ What's on your mind?":                                    true,
		"Hey! 🖐️ I'm here for you. How are you feeling today?":          true,
	}

	for i := 0; i < 50; i++ {
		assert.True(t, expected[bank.Greeting()])
	}
}
