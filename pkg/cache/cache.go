// Package cache stores computed layouts and rendered artifacts by content
// key.
//
// Keys come from a [Keyer]: a layout key hashes the normalised parameters
// and the layout options, and an artifact key hashes the layout key and the
// render options. Equal inputs therefore always map to the same entry.
//
// Three backends are provided:
//
//   - [NullCache] never stores anything.
//   - [FileCache] keeps entries on local disk for the CLI.
//   - [RedisCache] shares entries between server instances.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes of cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)
