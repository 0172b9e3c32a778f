package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/hueshift/pkg/cache"
	"github.com/matzehuels/hueshift/pkg/errors"
)

func writeRecipe(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeRecipe(t, `
workers = 3

[generation]
seed = 42
how_many = 8
min_hue_shift = 0.1
max_hue_shift = 0.4
how_hue_shift = 1.5

[output]
dir = "out"
format = "tiff"
prefix = "tile"

[cache]
backend = "redis"
ttl = "90m"

[cache.redis]
addr = "cache:6379"
db = 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	g := cfg.Generation
	if g.Seed != 42 || g.HowMany != 8 || g.MinHueShift != 0.1 || g.MaxHueShift != 0.4 || g.HowHueShift != 1.5 {
		t.Errorf("Generation = %+v", g)
	}
	if cfg.Output.Dir != "out" || cfg.Output.Format != "tiff" || cfg.Output.Prefix != "tile" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.TTL != 90*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Redis.Addr != "cache:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Cache.Redis)
	}
	// Untouched sections keep defaults.
	if cfg.Cache.Redis.Prefix != "hueshift:" {
		t.Errorf("Redis.Prefix = %q, want default", cfg.Cache.Redis.Prefix)
	}
	if cfg.Server != Default().Server {
		t.Errorf("Server = %+v, want defaults", cfg.Server)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "workers = ", errors.ErrCodeInvalidConfig},
		{"unknown key", "[generation]\nseeds = 1\n", errors.ErrCodeInvalidConfig},
		{"inverted range", "[generation]\nmin_hue_shift = 0.5\nmax_hue_shift = 0.2\n", errors.ErrCodeInvalidRange},
		{"full turn", "[generation]\nmax_hue_shift = 1.0\n", errors.ErrCodeInvalidInput},
		{"backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidConfig},
		{"workers", "workers = -1\n", errors.ErrCodeInvalidConfig},
		{"prefix", "[output]\nprefix = \"a/b\"\n", errors.ErrCodeInvalidPath},
		{"pixel limit", "[server]\nmax_pixels = -1\n", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeRecipe(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestEffectiveWorkers(t *testing.T) {
	cfg := Default()
	if cfg.EffectiveWorkers() < 1 {
		t.Error("EffectiveWorkers() should be at least 1")
	}
	cfg.Workers = 2
	if got := cfg.EffectiveWorkers(); got != 2 {
		t.Errorf("EffectiveWorkers() = %d, want 2", got)
	}
}

func TestCacheOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Cache{Backend: cache.BackendNone}.Open(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("none backend = %T, want NullCache", c)
	}

	dir := t.TempDir()
	c, err = Cache{Backend: cache.BackendFile, Dir: dir}.Open(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("file backend = %T, want *FileCache", c)
	}
	if fc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "hueshift") {
		t.Errorf("DefaultCacheDir() = %q", dir)
	}
}
