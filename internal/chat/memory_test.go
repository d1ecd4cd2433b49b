// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/saturdaylabs/saturday/internal/chat"
)

/*
TestMemory_AppendAndHistory verifies transcript ordering and per-key isolation.
*/
func TestMemory_AppendAndHistory(t *testing.T) {
	memory := chat.NewMemory()

	memory.Append("alice", chat.Turn{UserText: "first", Label: "neutral", Timestamp: time.Now()})
	memory.Append("alice", chat.Turn{UserText: "second", Label: "joy", Timestamp: time.Now()})
	memory.Append("bob", chat.Turn{UserText: "other", Label: "sadness", Timestamp: time.Now()})

	aliceHistory := memory.History("alice")
	assert.Len(t, aliceHistory, 2)
	assert.Equal(t, "first", aliceHistory[0].UserText)
	assert.Equal(t, "second", aliceHistory[1].UserText)

	assert.Equal(t, []string{"neutral", "joy"}, memory.Labels("alice"))
	assert.Equal(t, 1, memory.Len("bob"))
	assert.Equal(t, 0, memory.Len("carol"), "unknown key reads as empty")
}

/*
TestMemory_HistoryIsACopy verifies that mutating a returned transcript does
not affect the stored one.
*/
func TestMemory_HistoryIsACopy(t *testing.T) {
	memory := chat.NewMemory()
	memory.Append("key", chat.Turn{UserText: "original"})

	history := memory.History("key")
	history[0].UserText = "mutated"

	assert.Equal(t, "original", memory.History("key")[0].UserText)
}

/*
TestMemory_ConcurrentAppends verifies that racing writers on the same and on
different keys lose no turns.
*/
func TestMemory_ConcurrentAppends(t *testing.T) {
	memory := chat.NewMemory()

	const writers = 8
	const turnsPerWriter = 50

	var waitGroup sync.WaitGroup
	for writer := 0; writer < writers; writer++ {
		waitGroup.Add(1)
		go func(id int) {
			defer waitGroup.Done()
			key := fmt.Sprintf("conversation-%d", id%2) // two contended keys
			for i := 0; i < turnsPerWriter; i++ {
				memory.Append(key, chat.Turn{UserText: "msg", Label: "neutral"})
			}
		}(writer)
	}
	waitGroup.Wait()

	total := memory.Len("conversation-0") + memory.Len("conversation-1")
	assert.Equal(t, writers*turnsPerWriter, total)
}
