package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string // defaults to BackendFile
	Dir     string // FileCache directory
	Redis   RedisConfig
	Mongo   MongoConfig

	// Prefix namespaces every key, for deployments sharing a Redis or
	// MongoDB backend.
	Prefix string
}

// Keyer returns the keyer for cfg: the default keyer, scoped by Prefix
// when one is set.
func (cfg Config) Keyer() Keyer {
	if cfg.Prefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), cfg.Prefix)
}

// Open creates the configured backend.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: directory is required")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (must be one of: none, file, redis, mongo)", cfg.Backend)
	}
}
