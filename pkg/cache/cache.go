// Package cache stores generated variant batches and palette reports so that
// repeated requests with the same image and parameters skip regeneration.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// All backends implement [Cache]. Keys are produced by a [Keyer] from the
// content hash of the source image plus every option that affects output,
// so a cached entry is only reused for a bit-identical result.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry kind.
const (
	TTLVariants = 7 * 24 * time.Hour
	TTLPalette  = 24 * time.Hour
)

// MaxEntryBytes is the largest value callers should store. MongoDB caps a
// document at 16 MiB including the key and expiry fields.
const MaxEntryBytes = 15 << 20

// Backend names accepted by the config file and the CLI.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// ValidBackends is the set of supported cache backends.
var ValidBackends = map[string]bool{
	BackendFile:  true,
	BackendRedis: true,
	BackendMongo: true,
	BackendNone:  true,
}
