// Package store persists search results so repeated runs with identical
// settings skip the search entirely.
//
// A store maps an opaque key to a byte payload with an optional TTL. Keys for
// search results are derived from the full set of search parameters with
// [ResultKey], so any parameter change produces a different key. Backends:
// [FileStore] for CLI usage, [RedisStore] for shared deployments, and
// [NullStore] to disable persistence.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by helpers that require a present entry.
var ErrNotFound = errors.New("not found")

// Store is a byte-oriented result store.
type Store interface {
	// Get retrieves a value. The second return reports presence; an absent
	// key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
