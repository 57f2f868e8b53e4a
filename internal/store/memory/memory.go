// Package memory is the in-process store backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/anhdng/songngu/internal/store"
)

// Store is an in-memory key/value store with an optional byte budget.
// Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	budget int // 0 = unlimited
	used   int // sum of key+value bytes
	data   map[string][]byte
}

// New creates a store with the given byte budget. A budget of 0 disables
// quota enforcement.
func New(budget int) *Store {
	return &Store{
		budget: budget,
		data:   make(map[string][]byte),
	}
}

// Get implements store.KV.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, store.ErrNotFound)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements store.KV. Fails with store.ErrQuotaExceeded when the write
// would push the store past its budget; the store is left unchanged.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.used + len(key) + len(value)
	if old, ok := s.data[key]; ok {
		next -= len(key) + len(old)
	}
	if s.budget > 0 && next > s.budget {
		return fmt.Errorf("%q (%d of %d bytes): %w", key, next, s.budget, store.ErrQuotaExceeded)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	s.used = next
	return nil
}

// Delete implements store.KV.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.data[key]; ok {
		s.used -= len(key) + len(old)
		delete(s.data, key)
	}
	return nil
}

// Keys implements store.KV.
func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Used returns the current byte usage (keys plus values).
func (s *Store) Used() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
