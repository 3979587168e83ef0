// Package cache provides pluggable caching backends for gitlab-manager.
//
// Caching is only applied to read-only project discovery lookups; forwarding
// operations (uploads, pipeline triggers, release creation) always hit the
// GitLab API directly.
//
// Backends:
//   - FileCache: file-based storage for CLI usage (~/.cache/gitlab-manager/)
//   - RedisCache: Redis-backed storage for multi-instance server deployments
//   - MongoCache: MongoDB-backed storage with TTL index expiry
//   - NullCache: no-op backend for disabling caching
//
// All backends share TTL semantics: a TTL of 0 means entries never expire.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all caching backends.
type Cache interface {
	// Get retrieves a value from the cache.
	// The second return value reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value in the cache with the given TTL.
	// A TTL of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	// Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
