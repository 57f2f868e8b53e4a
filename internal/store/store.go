// Package store defines the key/value port every persistence backend
// implements.
//
// The content, backup and image layers are written against this interface
// only, so they run unchanged on the in-memory backend (tests, single-node
// deploys) and the Redis backend (shared deploys).
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get for a missing key.
	ErrNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned by Set when the write would push the
	// backend past its storage budget.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrUnavailable is returned when the backend cannot be reached at all.
	ErrUnavailable = errors.New("storage unavailable")
)

// KV is a synchronous string-keyed byte store.
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the value for key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys with the given prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
