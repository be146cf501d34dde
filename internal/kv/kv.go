// Package kv defines the key-value store shared by the response cache and the
// team registry, with memory, Postgres and SQLite backends.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key is absent or expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is an atomic-replace key-value store with optional per-key expiry.
type Store interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value for key. A ttl <= 0 stores the key without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores value without expiry only if key is absent (or expired).
	// It reports whether the write happened.
	SetNX(ctx context.Context, key string, value []byte) (bool, error)

	Delete(ctx context.Context, key string) error

	// Purge removes expired keys and returns how many were dropped.
	Purge(ctx context.Context) (int64, error)

	// Stats reports key counts for health checks.
	Stats() map[string]interface{}

	Close() error
}

// expiry converts a ttl into an absolute deadline. The zero time means never.
func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
