// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat

import (
	"math/rand/v2"
)

// greetingResponses is the pool used when a message short-circuits as a greeting.
var greetingResponses = []string{
	"Hey there! 👋 How's your day going?",
	"Hello! 😊 Hope you're doing well. How can I support you today?",
	"Hi! ✨ What's on your mind?",
	"Hey! 🖐️ I'm here for you. How are you feeling today?",
}

// genericResponses is the pool for labels with no curated reply, including
// brand-new labels a future model version might emit.
var genericResponses = []string{
	"I'm here for you! 🧡 Want to tell me more?",
	"Sounds interesting! ✨ Tell me what's on your mind.",
	"I'm listening carefully. 👂 Feel free to share more!",
	"Thanks for opening up. 🧡 I'm here for you.",
}

// emotionResponses maps each known emotion label to its curated reply pool.
// The label set intentionally exceeds what the keyword fallback can produce;
// the remote model emits the full range.
var emotionResponses = map[string][]string{
	"admiration":     {"That's so inspiring! 🌟 What inspired you the most?"},
	"amusement":      {"Haha, sounds hilarious! 😄 What made you laugh today?"},
	"anger":          {"I hear you. It's okay to feel angry sometimes. 🔥 What happened?"},
	"annoyance":      {"That's really annoying, I understand. 😤 What annoyed you?"},
	"approval":       {"That's wonderful! 👍 What else has been exciting for you?"},
	"caring":         {"You're very thoughtful. ❤️ Who are you thinking about?"},
	"confusion":      {"It's okay to be confused. 🤔 What's on your mind?"},
	"curiosity":      {"Curiosity leads to learning! 🔍 What are you curious about?"},
	"desire":         {"Dreams are powerful. ✨ What do you wish for?"},
	"disappointment": {"I'm sorry things didn't go well. 💔 Want to talk about it?"},
	"disapproval":    {"It's okay to feel that way. 🌿 What concerns you?"},
	"disgust":        {"That sounds very upsetting. 😖 What exactly happened?"},
	"embarrassment":  {"Everyone feels embarrassed sometimes. 😊 What happened?"},
	"excitement":     {"That's so exciting! 🎉 Tell me more!"},
	"fear":           {"Fear is natural. 🛡️ What made you feel scared?"},
	"gratitude":      {"Gratitude is beautiful. 🙏 What are you thankful for today?"},
	"grief":          {"I'm truly sorry for your loss. 🖤 Would you like to share more?"},
	"joy":            {"That's wonderful news! 😄 What brought you so much joy?"},
	"love":           {"Love is powerful. ❤️ Who or what are you thinking of?"},
	"nervousness":    {"Nerves mean you care. 💪 What's making you nervous?"},
	"optimism":       {"Optimism brightens everything! 🌟 What are you looking forward to?"},
	"pride":          {"You should be proud! 🏆 What achievement makes you proud?"},
	"realization":    {"Realizations change us. 🌈 What did you realize?"},
	"relief":         {"Relief feels great. 😌 What made you feel better?"},
	"remorse":        {"It's okay to feel sorry. 🌼 What would you like to talk about?"},
	"sadness":        {"I'm here for you. 💙 Want to share what's making you sad?"},
	"surprise":       {"Surprises keep life exciting! 😲 What surprised you?"},
	"positive":       {"That's so great to hear! 🌟 What's keeping you positive?"},
	"negative":       {"Sorry to hear that. 🤗 Want to talk about it?"},
	"satisfaction":   {"I'm glad you're feeling satisfied. ✨ What's been going well?"},
	"jealousy":       {"Jealousy is a natural feeling. 💚 What triggered it?"},
	"guilt":          {"Forgive yourself and heal. 🌼 What's bothering you?"},
	"neutral":        {"Alright! 🙂 Tell me more if you want!"},
}

// ResponseBank selects replies for emotion labels and greetings.
//
// Selection within a pool is uniform random, so repeated identical inputs may
// legitimately produce different replies. Every call returns something: labels
// without a curated pool fall back to the generic pool.
type ResponseBank struct {
	emotions map[string][]string
	greeting []string
	generic  []string
}

// NewResponseBank creates a bank seeded with the curated reply sets.
func NewResponseBank() *ResponseBank {
	return &ResponseBank{
		emotions: emotionResponses,
		greeting: greetingResponses,
		generic:  genericResponses,
	}
}

// ForLabel returns a reply for the given emotion label, falling back to the
// generic pool for unknown labels.
func (bank *ResponseBank) ForLabel(label string) string {
	pool, ok := bank.emotions[label]
	if !ok || len(pool) == 0 {
		pool = bank.generic
	}
	return pick(pool)
}

// Greeting returns a reply from the greeting pool.
func (bank *ResponseBank) Greeting() string {
	return pick(bank.greeting)
}

// Knows reports whether the label has a curated pool. Used by the engine to
// decide whether a model label can be answered directly.
func (bank *ResponseBank) Knows(label string) bool {
	pool, ok := bank.emotions[label]
	return ok && len(pool) > 0
}

// pick selects a uniform random element.
func pick(pool []string) string {
	if len(pool) == 1 {
		return pool[0]
	}
	return pool[rand.IntN(len(pool))]
}
