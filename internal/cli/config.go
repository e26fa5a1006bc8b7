package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trussmesh/pkg/cache"
	"github.com/matzehuels/trussmesh/pkg/pipeline"
)

// Environment variables read after the optional .env file has been loaded.
const (
	envCache     = "TRUSSMESH_CACHE"
	envRedisAddr = "TRUSSMESH_REDIS_ADDR"
	envMongoURI  = "TRUSSMESH_MONGO_URI"
	envPrefix    = "TRUSSMESH_CACHE_PREFIX"
)

// Config is the optional config file. Every field is a fallback for the
// flag of the same name; flags always win.
type Config struct {
	Output     string   `toml:"output"`
	Title      string   `toml:"title"`
	Unit       string   `toml:"unit"`
	SourceUnit string   `toml:"source_unit"`
	Ordering   string   `toml:"ordering"`
	Formats    []string `toml:"formats"`
	LayerTags  bool     `toml:"layer_tags"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // none, file (default), redis, mongo
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	MongoURI  string `toml:"mongo_uri"`
	Prefix    string `toml:"prefix"` // key namespace on shared backends
}

// ServerConfig configures "trussmesh serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// configPath returns the default config file location
// ($XDG_CONFIG_HOME/trussmesh/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path. An empty path selects the
// default location, which may be absent. Environment overrides are applied
// on top.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			cfg.applyEnv()
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	case os.IsNotExist(err) && !explicit:
		// no config file
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides cache settings from the environment.
func (cfg *Config) applyEnv() {
	if v := os.Getenv(envCache); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv(envRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv(envMongoURI); v != "" {
		cfg.Cache.MongoURI = v
	}
	if v := os.Getenv(envPrefix); v != "" {
		cfg.Cache.Prefix = v
	}
}

// applyTo fills the options left empty by flags.
func (cfg *Config) applyTo(opts *pipeline.Options) {
	if opts.Output == "" {
		opts.Output = cfg.Output
	}
	if opts.Title == "" {
		opts.Title = cfg.Title
	}
	if opts.Unit == "" {
		opts.Unit = cfg.Unit
	}
	if opts.SourceUnit == "" {
		opts.SourceUnit = cfg.SourceUnit
	}
	if opts.Ordering == "" {
		opts.Ordering = cfg.Ordering
	}
	if len(opts.Formats) == 0 {
		opts.Formats = cfg.Formats
	}
}

// cacheConfig returns the backend configuration. noCache forces the null
// cache.
func (cfg *Config) cacheConfig(noCache bool) (cache.Config, error) {
	if noCache {
		return cache.Config{Backend: cache.BackendNone}, nil
	}
	cc := cache.Config{
		Backend: cfg.Cache.Backend,
		Dir:     cfg.Cache.Dir,
		Redis:   cache.RedisConfig{Addr: cfg.Cache.RedisAddr},
		Mongo:   cache.MongoConfig{URI: cfg.Cache.MongoURI},
		Prefix:  cfg.Cache.Prefix,
	}
	if cc.Dir == "" && (cc.Backend == "" || cc.Backend == cache.BackendFile) {
		dir, err := cacheDir()
		if err != nil {
			return cache.Config{}, err
		}
		cc.Dir = dir
	}
	return cc, nil
}
