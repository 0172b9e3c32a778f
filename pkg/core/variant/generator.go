package variant

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hueshift/pkg/core/curve"
	"github.com/matzehuels/hueshift/pkg/core/palette"
	"github.com/matzehuels/hueshift/pkg/core/random"
	"github.com/matzehuels/hueshift/pkg/core/raster"
	"github.com/matzehuels/hueshift/pkg/core/rotate"
)

// Generator produces batches of variants.
//
// The zero value is ready to use: it rotates in HSL and rewrites pixels on
// the calling goroutine.
type Generator struct {
	// Rotator performs the hue rotation. Nil means rotate.HSL.
	Rotator rotate.Rotator
	// Workers bounds the number of concurrent pixel rewrites. Values <= 1
	// run sequentially.
	Workers int
}

// Batch is the result of one [Generator.Run].
type Batch struct {
	// Images holds the variants in generation order.
	Images []*raster.Image
	// Mappings holds the color mapping used for each variant.
	Mappings []Mapping
	// PaletteSize is the number of distinct colors in the source.
	PaletteSize int
}

// Shifts returns the rotations in degrees applied by variant i, one per
// palette color in ascending key order.
func (b *Batch) Shifts(i int) []float64 {
	return b.Mappings[i].Shifts()
}

// GenerateAlteredImages returns params.HowMany hue-shifted variants of img
// using the default Generator.
func GenerateAlteredImages(img *raster.Image, params Params) ([]*raster.Image, error) {
	b, err := (&Generator{}).Run(context.Background(), img, params)
	if err != nil {
		return nil, err
	}
	return b.Images, nil
}

// Run validates its inputs, extracts the palette once and produces
// params.HowMany variants. Either every variant is returned or none are.
//
// Mappings are built sequentially from a single random sequence before any
// pixel is rewritten; ctx is only consulted between pixel rewrites.
func (g *Generator) Run(ctx context.Context, img *raster.Image, params Params) (*Batch, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	pal := palette.Extract(img)
	mappings := g.drawMappings(pal, params)

	images, err := g.rewrite(ctx, img, mappings)
	if err != nil {
		return nil, err
	}
	return &Batch{Images: images, Mappings: mappings, PaletteSize: pal.Len()}, nil
}

// drawMappings consumes the random sequence in variant order: variant 0
// takes all of its draws before variant 1 starts.
func (g *Generator) drawMappings(pal palette.Palette, params Params) []Mapping {
	rng := random.New(params.Seed)
	shape := curve.Power(params.HowHueShift)
	t := rotate.Transform{
		Rotator: g.rotator(),
		Picker:  rotate.NewPicker(params.MinHueShift, params.MaxHueShift, shape, rng),
	}

	mappings := make([]Mapping, params.HowMany)
	for i := range mappings {
		mappings[i] = BuildMapping(pal, t)
	}
	return mappings
}

func (g *Generator) rewrite(ctx context.Context, img *raster.Image, mappings []Mapping) ([]*raster.Image, error) {
	images := make([]*raster.Image, len(mappings))

	if g.Workers <= 1 {
		for i, m := range mappings {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out, err := Apply(img, m)
			if err != nil {
				return nil, fmt.Errorf("variant %d: %w", i, err)
			}
			images[i] = out
		}
		return images, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.Workers)
	for i, m := range mappings {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := Apply(img, m)
			if err != nil {
				return fmt.Errorf("variant %d: %w", i, err)
			}
			images[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func (g *Generator) rotator() rotate.Rotator {
	if g.Rotator == nil {
		return rotate.HSL{}
	}
	return g.Rotator
}
