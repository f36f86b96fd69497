package repository

import (
	"context"
	"sync"
	"time"
)

type memoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() RevocationStore {
	return &memoryRevocationStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *memoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[revokedKey(tokenID)] = now.Add(ttl)
	s.sweepLocked(now)
	return nil
}

func (s *memoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.entries[revokedKey(tokenID)]
	s.mu.RUnlock()

	return ok && s.now().Before(expiresAt), nil
}

// sweepLocked drops expired entries. Caller holds s.mu.
func (s *memoryRevocationStore) sweepLocked(now time.Time) {
	for key, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, key)
		}
	}
}
