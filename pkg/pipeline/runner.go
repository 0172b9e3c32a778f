package pipeline

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hueshift/pkg/cache"
	"github.com/matzehuels/hueshift/pkg/core/raster"
	"github.com/matzehuels/hueshift/pkg/core/variant"
	"github.com/matzehuels/hueshift/pkg/inspect"
	"github.com/matzehuels/hueshift/pkg/io"
	"github.com/matzehuels/hueshift/pkg/observability"
)

// Cache key kinds reported to observability hooks.
const (
	kindVariants = "variants"
	kindPalette  = "palette"
)

// Runner encapsulates generation with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Workers bounds concurrent pixel rewrites within one run.
	Workers int
	// TTL overrides cache.TTLVariants when positive.
	TTL time.Duration
	// MaxEntryBytes overrides cache.MaxEntryBytes when positive. Larger
	// results are returned but not stored.
	MaxEntryBytes int
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute generates and encodes opts.Params.HowMany variants of img.
// Cache failures are logged and never fail the run.
func (r *Runner) Execute(ctx context.Context, img *raster.Image, opts Options) (*Result, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	imageHash := HashImage(img)
	key := r.Keyer.VariantKey(imageHash, opts.VariantKeyOpts())

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.ImageHash = imageHash
			res.Format = opts.Format
			r.Logger.Info("loaded variants from cache",
				"variants", res.Stats.Variants,
				"palette", res.Stats.PaletteSize)
			return res, nil
		}
	}

	res := &Result{ImageHash: imageHash, Format: opts.Format}

	genStart := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, imageHash, opts.Params.HowMany)
	gen := &variant.Generator{Workers: r.Workers}
	batch, err := gen.Run(ctx, img, opts.Params)
	res.Stats.GenerateTime = time.Since(genStart)
	if err != nil {
		observability.Pipeline().OnGenerateComplete(ctx, imageHash, 0, 0, res.Stats.GenerateTime, err)
		return nil, fmt.Errorf("generate: %w", err)
	}
	observability.Pipeline().OnGenerateComplete(ctx, imageHash, len(batch.Images), batch.PaletteSize, res.Stats.GenerateTime, nil)

	res.Stats.PaletteSize = batch.PaletteSize
	res.Stats.Variants = len(batch.Images)
	r.Logger.Info("generated variants",
		"variants", res.Stats.Variants,
		"palette", res.Stats.PaletteSize,
		"duration", res.Stats.GenerateTime)

	encStart := time.Now()
	res.Encoded = make([][]byte, len(batch.Images))
	res.Shifts = make([][]float64, len(batch.Images))
	for i, out := range batch.Images {
		start := time.Now()
		data, err := io.EncodeBytes(out, opts.Format)
		if err != nil {
			return nil, fmt.Errorf("encode variant %d: %w", i, err)
		}
		observability.Pipeline().OnEncodeComplete(ctx, opts.Format, len(data), time.Since(start))
		res.Encoded[i] = data
		res.Shifts[i] = batch.Shifts(i)
	}
	res.Stats.EncodeTime = time.Since(encStart)
	r.Logger.Debug("encoded variants", "format", opts.Format, "duration", res.Stats.EncodeTime)

	r.store(ctx, key, kindVariants, cachedBatch{
		PaletteSize: res.Stats.PaletteSize,
		Shifts:      res.Shifts,
		Images:      res.Encoded,
	}, r.ttl())

	return res, nil
}

// Palette analyses img with caching and reports whether the report came
// from the cache.
func (r *Runner) Palette(ctx context.Context, img *raster.Image, opts inspect.Options, refresh bool) (*inspect.Report, bool, error) {
	if err := img.Validate(); err != nil {
		return nil, false, err
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.PaletteKey(HashImage(img), cache.PaletteKeyOpts{
		Method: string(opts.Method),
		Count:  opts.Count,
	})

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var report inspect.Report
			if err := json.Unmarshal(data, &report); err == nil {
				observability.Cache().OnCacheHit(ctx, kindPalette)
				return &report, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, kindPalette)
	}

	report, err := inspect.Analyze(img, opts)
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, key, kindPalette, report, cache.TTLPalette)
	return report, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kindVariants)
		return nil, false
	}

	var cb cachedBatch
	if err := json.Unmarshal(data, &cb); err != nil || len(cb.Images) != len(cb.Shifts) {
		r.Logger.Debug("discarding unreadable cache entry", "key", key)
		observability.Cache().OnCacheMiss(ctx, kindVariants)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kindVariants)

	return &Result{
		Encoded:  cb.Images,
		Shifts:   cb.Shifts,
		CacheHit: true,
		Stats: Stats{
			PaletteSize: cb.PaletteSize,
			Variants:    len(cb.Images),
		},
	}, true
}

func (r *Runner) store(ctx context.Context, key, kind string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cache encode failed", "kind", kind, "err", err)
		return
	}
	if limit := r.maxEntryBytes(); len(data) > limit {
		r.Logger.Debug("skipping oversized cache entry", "kind", kind, "bytes", len(data), "limit", limit)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache store failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLVariants
}

// HashImage returns the content hash of img, covering its dimensions and
// every byte of its buffer.
func HashImage(img *raster.Image) string {
	buf := make([]byte, 0, 16+len(img.Buffer))
	buf = binary.BigEndian.AppendUint64(buf, uint64(img.Width))
	buf = binary.BigEndian.AppendUint64(buf, uint64(img.Height))
	buf = append(buf, img.Buffer...)
	return cache.Hash(buf)
}

func (r *Runner) maxEntryBytes() int {
	if r.MaxEntryBytes > 0 {
		return r.MaxEntryBytes
	}
	return cache.MaxEntryBytes
}
