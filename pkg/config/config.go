// Package config loads hueshift recipes from TOML.
//
// A recipe bundles generation parameters, output settings, the cache
// backend and the API server settings:
//
//	workers = 4
//
//	[generation]
//	seed = 42
//	how_many = 8
//	min_hue_shift = 0.1
//	max_hue_shift = 0.4
//	how_hue_shift = 1.0
//
//	[output]
//	dir = "out"
//	format = "png"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
// Sections missing from the file keep the values of [Default]. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hueshift/pkg/cache"
	"github.com/matzehuels/hueshift/pkg/core/variant"
	"github.com/matzehuels/hueshift/pkg/errors"
	hio "github.com/matzehuels/hueshift/pkg/io"
)

const appName = "hueshift"

// Config is a complete recipe.
type Config struct {
	// Workers bounds parallel pixel rewriting. Zero means GOMAXPROCS.
	Workers    int            `toml:"workers"`
	Generation variant.Params `toml:"generation"`
	Output     Output         `toml:"output"`
	Cache      Cache          `toml:"cache"`
	Server     Server         `toml:"server"`
}

// Output controls where and how variants are written.
type Output struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
	// Prefix names output files. Empty derives it from the input file name.
	Prefix string `toml:"prefix"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
	Redis   Redis         `toml:"redis"`
	Mongo   Mongo         `toml:"mongo"`
}

// Redis holds connection settings for the redis backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo holds connection settings for the mongo backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API. MaxUploadBytes bounds the request body,
// MaxPixels the decoded Width*Height of the uploaded image.
type Server struct {
	Addr           string `toml:"addr"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`
	MaxPixels      int64  `toml:"max_pixels"`
	MaxVariants    int    `toml:"max_variants"`
}

// Default returns the built-in recipe.
func Default() Config {
	return Config{
		Generation: variant.Params{
			HowMany:     4,
			MaxHueShift: 0.5,
		},
		Output: Output{
			Dir:    ".",
			Format: hio.DefaultFormat,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     cache.TTLVariants,
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: appName + ":",
			},
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   appName,
				Collection: "cache",
			},
		},
		Server: Server{
			Addr:           ":8080",
			MaxUploadBytes: 16 << 20,
			MaxPixels:      1 << 24,
			MaxVariants:    32,
		},
	}
}

// Load reads the recipe at path on top of [Default] and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := errors.ValidatePath(path); err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every section. Generation errors keep their own codes.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be >= 0, got %d", c.Workers)
	}
	if err := c.Generation.Validate(); err != nil {
		return err
	}
	if c.Output.Format != "" {
		if err := hio.ValidateFormat(c.Output.Format); err != nil {
			return err
		}
	}
	if c.Output.Prefix != "" {
		if err := errors.ValidatePrefix(c.Output.Prefix); err != nil {
			return err
		}
	}
	if c.Cache.Backend != "" && !cache.ValidBackends[c.Cache.Backend] {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must be >= 0, got %s", c.Cache.TTL)
	}
	if c.Server.MaxUploadBytes < 0 || c.Server.MaxPixels < 0 || c.Server.MaxVariants < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server limits must be >= 0")
	}
	return nil
}

// EffectiveWorkers returns Workers, or GOMAXPROCS when unset.
func (c Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return max(1, runtime.GOMAXPROCS(0))
}

// Open connects to the configured backend. Network backends retry with
// backoff until ctx is done.
func (c Cache) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case cache.BackendNone:
		return cache.NewNullCache(), nil
	case cache.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case cache.BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:        c.Mongo.URI,
			Database:   c.Mongo.Database,
			Collection: c.Mongo.Collection,
		})
		if err != nil {
			return nil, err
		}
		return mc, nil
	case cache.BackendFile, "":
		dir := c.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultCacheDir(); err != nil {
				return nil, err
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Backend)
	}
}

// DefaultCacheDir returns the XDG cache directory (~/.cache/hueshift).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
