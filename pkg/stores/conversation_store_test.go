package stores

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

func TestNewInMemoryConversationStore(t *testing.T) {
	store := NewInMemoryConversationStore()
	assert.NotNil(t, store)
	assert.NotNil(t, store.data)
	assert.Empty(t, store.data)
}

func TestConversationStore_Get(t *testing.T) {
	store := NewInMemoryConversationStore()

	entries, exists := store.Get("nonexistent")
	assert.False(t, exists)
	assert.Nil(t, entries)

	store.Append("session1", types.NewUserEntry("Tell me about zoos"))
	store.Append("session1", types.NewAssistantEntry("Saigon Zoo", types.Sources{VectorResults: 5}))

	entries, exists = store.Get("session1")
	assert.True(t, exists)
	assert.Len(t, entries, 2)
	assert.Equal(t, "user", entries[0].Type)
	assert.Equal(t, "assistant", entries[1].Type)
	assert.Equal(t, 5, entries[1].Sources.VectorResults)

	// Mutating the returned slice leaves the store untouched.
	entries[0].Message = "changed"
	again, _ := store.Get("session1")
	assert.Equal(t, "Tell me about zoos", again[0].Message)
}

func TestConversationStore_Delete(t *testing.T) {
	store := NewInMemoryConversationStore()

	store.Append("session1", types.NewUserEntry("hi"))
	store.Delete("session1")

	_, exists := store.Get("session1")
	assert.False(t, exists)

	// Deleting an unknown session is a no-op.
	store.Delete("nonexistent")
}

func TestConversationStore_Stats(t *testing.T) {
	store := NewInMemoryConversationStore()

	store.Append("a", types.NewUserEntry("1"))
	store.Append("a", types.NewUserEntry("2"))
	store.Append("b", types.NewUserEntry("3"))

	stats := store.Stats()
	assert.Equal(t, 2, stats.TotalConversations)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 2, stats.ActiveSessions)
}

func TestConversationStore_TTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewInMemoryConversationStore(
		WithTTL(time.Minute),
		WithClock(func() time.Time { return now }),
	)

	store.Append("old", types.NewUserEntry("hi"))

	now = now.Add(2 * time.Minute)
	store.Append("fresh", types.NewUserEntry("hello"))

	_, exists := store.Get("old")
	assert.False(t, exists)
	assert.Equal(t, 1, store.Stats().ActiveSessions)

	store.Cleanup()
	assert.Len(t, store.data, 1)

	// An expired session starts over instead of resuming.
	store.Append("old", types.NewUserEntry("again"))
	entries, _ := store.Get("old")
	assert.Len(t, entries, 1)
}

func TestConversationStore_Run(t *testing.T) {
	store := NewInMemoryConversationStore()

	// Without a TTL the sweeper has nothing to do and returns immediately.
	done := make(chan struct{})
	go func() {
		store.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return without a TTL")
	}

	ctx, cancel := context.WithCancel(context.Background())
	ttlStore := NewInMemoryConversationStore(WithTTL(time.Minute), WithCleanupInterval(time.Millisecond))

	stopped := make(chan struct{})
	go func() {
		ttlStore.Run(ctx)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestConversationStore_Concurrent(t *testing.T) {
	store := NewInMemoryConversationStore()

	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", n%4)
			store.Append(id, types.NewUserEntry("msg"))
			store.Get(id)
			store.Stats()
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 20, store.Stats().TotalMessages)
	assert.Equal(t, 4, store.Stats().TotalConversations)
}
