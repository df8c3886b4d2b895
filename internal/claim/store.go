package claim

import (
	"context"
	"sync"
	"time"
)

// WindowStore persists claim windows and confirmed claims per recipient so a
// cooldown survives restarts. Implemented by the Redis cache in production.
type WindowStore interface {
	Window(ctx context.Context, address string) (time.Time, error)
	SaveWindow(ctx context.Context, address string, endsAt time.Time) error
	RecordClaim(ctx context.Context, address string, amount int64, txHash string, claimedAt time.Time) error
}

// MemoryStore is an in-process WindowStore for tests and single-node runs
// without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]time.Time)}
}

// Window returns the stored window end, or the zero time when none is active.
func (s *MemoryStore) Window(_ context.Context, address string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	endsAt, ok := s.windows[address]
	if !ok || !time.Now().Before(endsAt) {
		delete(s.windows, address)
		return time.Time{}, nil
	}
	return endsAt, nil
}

// SaveWindow stores the window end for an address.
func (s *MemoryStore) SaveWindow(_ context.Context, address string, endsAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[address] = endsAt
	return nil
}

// RecordClaim is a no-op for the in-memory store.
func (s *MemoryStore) RecordClaim(context.Context, string, int64, string, time.Time) error {
	return nil
}
