// Package cache provides byte-oriented caching for rendered preview
// snapshots.
//
// Rendering a lex document to its preview form is pure in the document
// content, so snapshots are cached under content-hashed keys: the same
// source bytes always hit the same entry, and any edit naturally misses.
//
// Three backends implement the [Cache] interface:
//   - [FileCache]: entries as files under the XDG cache directory (CLI)
//   - [RedisCache]: shared cache for multi-instance preview serving
//   - [NullCache]: no-op, for tests and --no-cache runs
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface all cache backends implement.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves the value for key. The second return reports whether
	// the key was present (and unexpired).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. A non-zero ttl bounds the entry's
	// lifetime; zero means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SnapshotKey builds the cache key for a rendered preview snapshot.
// The key binds the source document ID, the render format, and the content
// hash, so edits and format changes never collide.
func SnapshotKey(sourceID, format string, content []byte) string {
	return "snapshot:" + format + ":" + sourceID + ":" + Hash(content)
}
