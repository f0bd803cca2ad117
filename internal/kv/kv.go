// Package kv defines the key-value contract every persistence backend
// implements. Values are opaque bytes; TTLs are passed straight through to
// the backend.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist or has expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is a flat key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key. ttl <= 0 means the key never expires.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// Backend names accepted by configuration.
const (
	BackendRedis  = "redis"
	BackendRemote = "remote"
	BackendMemory = "memory"
)
