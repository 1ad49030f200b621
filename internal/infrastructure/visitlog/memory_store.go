package visitlog

import (
	"context"
	"sync"

	"github.com/shopfront/backend/internal/domain/shop"
)

// MemoryStore is an in-memory visit log suitable for single-instance
// deployments. State is lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    []shop.VisitEntry // newest first
	maxEntries int
}

// NewMemoryStore creates a memory store retaining at most maxEntries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MemoryStore{
		entries:    make([]shop.VisitEntry, 0, maxEntries),
		maxEntries: maxEntries,
	}
}

// Append records a visit, evicting the oldest entry at the bound.
func (s *MemoryStore) Append(ctx context.Context, entry shop.VisitEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]shop.VisitEntry{entry}, s.entries...)
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *MemoryStore) Recent(ctx context.Context, n int) ([]shop.VisitEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]shop.VisitEntry, n)
	copy(out, s.entries[:n])
	return out, nil
}

// Len returns the number of retained entries.
func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
