// Package pipeline runs variant generation end to end for the CLI and the
// HTTP API.
//
// A run hashes the source image, looks the batch up in the cache, generates
// the variants on a miss, encodes them and stores the encoded batch. Both
// entry points share this logic so they produce byte-identical output for the
// same image and parameters.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	runner.Workers = 4
//	res, err := runner.Execute(ctx, img, pipeline.Options{
//	    Params: variant.Params{Seed: 42, HowMany: 8, MaxHueShift: 0.5},
//	})
//	if err != nil {
//	    return err
//	}
//	for i, data := range res.Encoded {
//	    // write data, inspect res.Shifts[i]
//	}
package pipeline

import (
	"time"

	"github.com/matzehuels/hueshift/pkg/cache"
	"github.com/matzehuels/hueshift/pkg/core/variant"
	"github.com/matzehuels/hueshift/pkg/inspect"
	"github.com/matzehuels/hueshift/pkg/io"
)

// =============================================================================
// Options
// =============================================================================

// Options configures one run.
type Options struct {
	Params variant.Params `json:"params"`
	// Format is the encoding of every variant. Empty means io.DefaultFormat.
	Format string `json:"format,omitempty"`
	// Refresh bypasses the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults fills defaults and validates the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = io.DefaultFormat
	}
	if err := io.ValidateFormat(o.Format); err != nil {
		return err
	}
	return o.Params.Validate()
}

// VariantKeyOpts returns the cache key options for these options.
func (o *Options) VariantKeyOpts() cache.VariantKeyOpts {
	return cache.VariantKeyOpts{
		Seed:        o.Params.Seed,
		HowMany:     o.Params.HowMany,
		MinHueShift: o.Params.MinHueShift,
		MaxHueShift: o.Params.MaxHueShift,
		HowHueShift: o.Params.HowHueShift,
		Format:      o.Format,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result holds the outputs of one run.
type Result struct {
	// ImageHash is the content hash of the source image.
	ImageHash string
	// Format is the encoding of Encoded.
	Format string
	// Encoded holds one encoded image per variant, in generation order.
	Encoded [][]byte
	// Shifts holds, per variant, the rotation in degrees applied to each
	// palette color in ascending key order.
	Shifts [][]float64
	// Stats contains timing and size information.
	Stats Stats
	// CacheHit reports whether the batch came from the cache.
	CacheHit bool
}

// Stats contains run statistics.
type Stats struct {
	PaletteSize  int
	Variants     int
	GenerateTime time.Duration
	EncodeTime   time.Duration
}

// ShiftStats summarises the rotations of variant i.
func (r *Result) ShiftStats(i int) inspect.ShiftStats {
	return inspect.Shifts(r.Shifts[i])
}

// cachedBatch is the cache payload of a Result.
type cachedBatch struct {
	PaletteSize int         `json:"palette_size"`
	Shifts      [][]float64 `json:"shifts"`
	Images      [][]byte    `json:"images"`
}
