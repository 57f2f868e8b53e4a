// Package redis is the Redis-backed store backend.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/anhdng/songngu/internal/store"
)

// Store adapts a Redis client to the store.KV port.
type Store struct {
	client *goredis.Client
}

// New creates a Redis-backed store.
func New(client *goredis.Client) *Store {
	return &Store{client: client}
}

// Get implements store.KV.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%q: %w", key, store.ErrNotFound)
		}
		return nil, fmt.Errorf("get %q: %w", key, wrapConnErr(err))
	}
	return data, nil
}

// Set implements store.KV. Content keys are persistent: no TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, wrapConnErr(err))
	}
	return nil
}

// Delete implements store.KV.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, wrapConnErr(err))
	}
	return nil
}

// Keys implements store.KV using SCAN, so it stays safe against large
// keyspaces shared with other applications.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %q: %w", prefix, wrapConnErr(err))
	}
	sort.Strings(keys) // SCAN order is unspecified; the port promises sorted keys
	return keys, nil
}

// wrapConnErr maps transport-level failures onto the port's sentinel so
// callers can detect an unreachable backend with errors.Is.
func wrapConnErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
}
