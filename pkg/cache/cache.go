// Package cache stores built meshes and rendered artifacts.
//
// # Overview
//
// Building a mesh is cheap, but DXF parsing and SVG rendering are not, and
// the HTTP server sees the same inputs repeatedly. The pipeline therefore
// caches every artifact under a key derived from the content hash of the
// mesh and the options that shaped the output.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entries below a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [MongoCache]: a MongoDB collection with a TTL index, for servers
//
// All backends implement [Cache]. Backends that can drop all of their
// entries also implement [Clearer].
//
// # Keys
//
// A [Keyer] turns hashes and options into keys. [DefaultKeyer] hashes the
// options with SHA-256; [ScopedKeyer], selected by [Config].Prefix, adds a
// namespace prefix so several deployments can share one Redis or MongoDB
// instance.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can remove all of their entries.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default lifetimes of cached entries.
const (
	TTLMesh     = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
