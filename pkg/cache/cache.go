// Package cache provides pluggable storage for layouts, artifacts and shared
// diagrams.
//
// The outline parser, estimator and layout engine are pure and persist
// nothing. Caching is applied one level up, in the pipeline runner and the
// HTTP server, keyed by content hashes from a [Keyer]:
//
//   - [NullCache]: caching disabled
//   - [MemoryCache]: process-local, for the server and tests
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: document store with a TTL index
//
// All implementations treat a missing or expired entry as a miss, never an
// error.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases connections held by the cache.
	Close() error
}

// Default TTLs per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLDiagram  = 30 * 24 * time.Hour
)

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string
	Dir     string // file
	Addr    string // redis
	DB      int    // redis
	URI     string // mongo
	// Database and Collection default to "mindmap" and "cache".
	Database   string
	Collection string
}

// Open creates the cache described by cfg. An empty backend disables caching.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendMemory:
		return NewMemoryCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisOptions{Addr: cfg.Addr, DB: cfg.DB})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, MongoOptions{URI: cfg.URI, Database: cfg.Database, Collection: cfg.Collection})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, &UnknownBackendError{Backend: cfg.Backend}
	}
}

// UnknownBackendError reports an unsupported backend name.
type UnknownBackendError struct{ Backend string }

func (e *UnknownBackendError) Error() string {
	return "unknown cache backend: " + e.Backend
}
