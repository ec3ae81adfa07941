// Package cache provides content-addressed storage for transformed images.
//
// Every successful run stores its serialized output under a key derived from
// the SHA-256 of the input bytes and the transform applied, so re-running the
// same transform on an unchanged input skips parsing entirely.
//
// # Backends
//
//   - [FileCache]: JSON entries under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance via go-redis
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes its inputs;
// [ScopedKeyer] prepends a namespace.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a transformed image stays cached by default.
const TTLArtifact = 24 * time.Hour

// Cache stores opaque byte slices by key.
type Cache interface {
	// Get returns the value for key. The bool reports a hit; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c if it supports it and reports whether anything was done.
func Clear(ctx context.Context, c Cache) (bool, error) {
	cl, ok := c.(Clearer)
	if !ok {
		return false, nil
	}
	return true, cl.Clear(ctx)
}
