package stores

// ConversationStore keeps the chat history of each web session in memory.
// It is lost on restart. Sessions may expire after an idle TTL, swept by a
// background goroutine.

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

type ConversationStore interface {
	Append(sessionID string, entry types.ConversationEntry)
	Get(sessionID string) ([]types.ConversationEntry, bool)
	Delete(sessionID string)
	Stats() ConversationStats
	Cleanup()
}

// ConversationStats is a point-in-time summary of the store.
type ConversationStats struct {
	TotalConversations int `json:"total_conversations"`
	TotalMessages      int `json:"total_messages"`
	ActiveSessions     int `json:"active_sessions"`
}

type conversation struct {
	Entries    []types.ConversationEntry
	LastActive time.Time
}

// InMemoryConversationStore is the default implementation.
type InMemoryConversationStore struct {
	mu       sync.RWMutex
	data     map[string]*conversation
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

type ConversationStoreOption func(*InMemoryConversationStore)

func NewInMemoryConversationStore(options ...ConversationStoreOption) *InMemoryConversationStore {
	store := &InMemoryConversationStore{
		data:     make(map[string]*conversation),
		interval: time.Hour,
		now:      time.Now,
	}

	for _, option := range options {
		option(store)
	}

	return store
}

// Append adds entry to the session, creating the session on first use.
func (s *InMemoryConversationStore) Append(id string, entry types.ConversationEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.data[id]
	if !ok || s.expired(conv) {
		conv = &conversation{}
		s.data[id] = conv
	}

	conv.Entries = append(conv.Entries, entry)
	conv.LastActive = s.now()
}

// Get returns a copy of the session's entries.
func (s *InMemoryConversationStore) Get(id string) ([]types.ConversationEntry, bool) {
	s.mu.RLock()
	conv, ok := s.data[id]

	if !ok || s.expired(conv) {
		s.mu.RUnlock()
		return nil, false
	}

	out := make([]types.ConversationEntry, len(conv.Entries))
	copy(out, conv.Entries)
	s.mu.RUnlock()

	return out, true
}

func (s *InMemoryConversationStore) Delete(id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}

func (s *InMemoryConversationStore) Stats() ConversationStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := ConversationStats{}

	for _, conv := range s.data {
		if s.expired(conv) {
			continue
		}

		stats.TotalConversations++
		stats.ActiveSessions++
		stats.TotalMessages += len(conv.Entries)
	}

	return stats
}

// Cleanup drops every expired session.
func (s *InMemoryConversationStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0

	for id, conv := range s.data {
		if s.expired(conv) {
			delete(s.data, id)
			removed++
		}
	}

	if removed > 0 {
		log.Debug("expired conversations removed", "count", removed)
	}
}

/*
Run sweeps expired sessions until ctx is done. It returns immediately when
no TTL is configured.
*/
func (s *InMemoryConversationStore) Run(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

func (s *InMemoryConversationStore) expired(conv *conversation) bool {
	return s.ttl > 0 && s.now().Sub(conv.LastActive) > s.ttl
}

// WithTTL expires sessions idle for longer than ttl. Zero disables expiry.
func WithTTL(ttl time.Duration) ConversationStoreOption {
	return func(s *InMemoryConversationStore) {
		s.ttl = ttl
	}
}

func WithCleanupInterval(interval time.Duration) ConversationStoreOption {
	return func(s *InMemoryConversationStore) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithClock(now func() time.Time) ConversationStoreOption {
	return func(s *InMemoryConversationStore) {
		s.now = now
	}
}
