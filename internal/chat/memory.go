// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat

import (
	"sync"
	"time"
)

// Turn is one completed exchange in a conversation.
type Turn struct {
	UserText  string    `json:"user_message"`
	BotText   string    `json:"bot_response"`
	Label     string    `json:"predicted_emotion"`
	Timestamp time.Time `json:"timestamp"`
}

// conversation holds one key's transcript under its own lock, so appends to
// different conversations never contend with each other.
type conversation struct {
	mutex sync.Mutex
	turns []Turn
}

// Memory is the in-process conversation store.
//
// # Concurrency
//
// A read-write mutex guards the conversation index; each conversation then
// carries its own mutex for transcript appends. The store is deliberately
// ephemeral: transcripts vanish on restart and are scoped per process.
type Memory struct {
	mutex         sync.RWMutex
	conversations map[string]*conversation
}

// NewMemory creates an empty conversation store.
func NewMemory() *Memory {
	return &Memory{conversations: make(map[string]*conversation)}
}

// get returns the conversation for the key, creating it lazily.
func (memory *Memory) get(key string) *conversation {
	memory.mutex.RLock()
	entry, ok := memory.conversations[key]
	memory.mutex.RUnlock()
	if ok {
		return entry
	}

	memory.mutex.Lock()
	defer memory.mutex.Unlock()

	// Re-check under the write lock; another goroutine may have created it.
	if entry, ok := memory.conversations[key]; ok {
		return entry
	}
	entry = &conversation{}
	memory.conversations[key] = entry
	return entry
}

// Append records a completed turn at the end of the conversation.
// Concurrent appends to the same key serialize on the conversation lock, so
// the transcript order always matches completion order.
func (memory *Memory) Append(key string, turn Turn) {
	entry := memory.get(key)
	entry.mutex.Lock()
	defer entry.mutex.Unlock()
	entry.turns = append(entry.turns, turn)
}

// History returns a copy of the conversation transcript in append order.
// The copy keeps callers from observing later concurrent appends.
func (memory *Memory) History(key string) []Turn {
	entry := memory.get(key)
	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	turns := make([]Turn, len(entry.turns))
	copy(turns, entry.turns)
	return turns
}

// Labels returns the emotion trajectory of the conversation, one label per
// recorded turn in order.
func (memory *Memory) Labels(key string) []string {
	entry := memory.get(key)
	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	labels := make([]string, len(entry.turns))
	for i, turn := range entry.turns {
		labels[i] = turn.Label
	}
	return labels
}

// Len returns the number of recorded turns for the key.
func (memory *Memory) Len(key string) int {
	entry := memory.get(key)
	entry.mutex.Lock()
	defer entry.mutex.Unlock()
	return len(entry.turns)
}
