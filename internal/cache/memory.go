package cache

import (
	"context"
	"sync"
	"time"

	"coinpulse/internal/model"
)

type entry struct {
	summary   model.SentimentSummary
	expiresAt time.Time
}

// MemoryStore keeps summaries in-process. A zero TTL disables expiry.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

func (s *MemoryStore) Get(ctx context.Context, coin string) (*model.SentimentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[coin]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && time.Now().After(e.expiresAt) {
		return nil, nil
	}

	summary := e.summary
	return &summary, nil
}

func (s *MemoryStore) Set(ctx context.Context, coin string, summary model.SentimentSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[coin] = entry{
		summary:   summary,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}
