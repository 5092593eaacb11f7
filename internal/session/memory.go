package session

import (
	"context"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/session"
)

// MemoryStore is the single-process fallback used when no Redis URL is
// configured, and the store of choice in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	rec       session.Record
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, tokenID string) (*session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[tokenID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, tokenID)
		return nil, common.NewError(common.CodeNotFound, "session not found", nil)
	}
	rec := entry.rec
	return &rec, nil
}

func (s *MemoryStore) Set(ctx context.Context, rec session.Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[rec.TokenID] = memoryEntry{rec: rec, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenID)
	return nil
}
