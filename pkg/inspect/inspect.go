// Package inspect reports on the colors of an image and on the shifts a
// generated batch applied to them.
//
// Dominant colors are found either by weighted histogram
// (github.com/cenkalti/dominantcolor) or by k-means clustering
// (github.com/muesli/kmeans). Neither is used by the variant generator, which
// always works on the exact palette.
package inspect

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/matzehuels/hueshift/pkg/core/palette"
	"github.com/matzehuels/hueshift/pkg/core/raster"
	"github.com/matzehuels/hueshift/pkg/errors"
)

// Method selects how dominant colors are found.
type Method string

const (
	// MethodDominant ranks colors by a weighted histogram. It is
	// deterministic.
	MethodDominant Method = "dominant"
	// MethodKMeans clusters sampled pixels. The clustering library seeds its
	// initial centers from the clock, so centers of images without clearly
	// separated colors can differ between uncached runs; a cached report
	// keeps the first result until refreshed.
	MethodKMeans Method = "kmeans"
)

// ValidMethods lists the supported methods.
var ValidMethods = []Method{MethodDominant, MethodKMeans}

const (
	// DefaultCount is the number of swatches reported when none is asked for.
	DefaultCount = 8
	// MaxCount bounds the number of swatches.
	MaxCount = 64

	maxSamples = 12000
)

// Options configures Analyze.
type Options struct {
	Method Method `json:"method"`
	Count  int    `json:"count"`
}

// WithDefaults fills zero fields.
func (o Options) WithDefaults() Options {
	if o.Method == "" {
		o.Method = MethodDominant
	}
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	return o
}

// Validate checks method and count.
func (o Options) Validate() error {
	if !slices.Contains(ValidMethods, o.Method) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown palette method %q", o.Method)
	}
	if o.Count < 1 || o.Count > MaxCount {
		return errors.New(errors.ErrCodeInvalidInput, "count must be between 1 and %d, got %d", MaxCount, o.Count)
	}
	return nil
}

// Swatch is one dominant color. Weight is its share of the sampled pixels.
type Swatch struct {
	Hex    string  `json:"hex"`
	R      uint8   `json:"r"`
	G      uint8   `json:"g"`
	B      uint8   `json:"b"`
	Weight float64 `json:"weight"`
}

// Report summarises an image's colors.
type Report struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Distinct int      `json:"distinct"`
	Method   Method   `json:"method"`
	Swatches []Swatch `json:"swatches"`
}

// Analyze builds a Report for img. Swatches are ordered by descending weight,
// ties by hex code.
func Analyze(img *raster.Image, opts Options) (*Report, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r := &Report{
		Width:    img.Width,
		Height:   img.Height,
		Distinct: palette.Extract(img).Len(),
		Method:   opts.Method,
	}
	if img.PixelCount() == 0 {
		r.Swatches = []Swatch{}
		return r, nil
	}

	var sw []Swatch
	if opts.Method == MethodKMeans {
		sw = kmeansSwatches(img, opts.Count)
	}
	if len(sw) == 0 {
		sw = dominantSwatches(img, opts.Count)
	}
	slices.SortFunc(sw, func(a, b Swatch) int {
		return cmp.Or(cmp.Compare(b.Weight, a.Weight), cmp.Compare(a.Hex, b.Hex))
	})
	r.Swatches = sw
	return r, nil
}

func dominantSwatches(img *raster.Image, k int) []Swatch {
	found := dominantcolor.FindWeight(img.NRGBA(), k)
	out := make([]Swatch, 0, len(found))
	for _, c := range found {
		out = append(out, swatch(c.RGBA, c.Weight))
	}
	return out
}

func kmeansSwatches(img *raster.Image, k int) []Swatch {
	step := 1
	if n := img.PixelCount(); n > maxSamples {
		step = int(math.Sqrt(float64(n)/float64(maxSamples))) + 1
	}

	var dataset clusters.Observations
	buf := img.Buffer
	for y := 0; y < img.Height; y += step {
		for x := 0; x < img.Width; x += step {
			i := (y*img.Width + x) * raster.BytesPerPixel
			if buf[i+3] == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(buf[i]) / 255,
				float64(buf[i+1]) / 255,
				float64(buf[i+2]) / 255,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(dataset)))
	if err != nil {
		return nil
	}

	out := make([]Swatch, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		rgba := color.RGBA{
			R: unit8(c.Center[0]),
			G: unit8(c.Center[1]),
			B: unit8(c.Center[2]),
			A: 255,
		}
		out = append(out, swatch(rgba, float64(len(c.Observations))/float64(len(dataset))))
	}
	return out
}

func swatch(c color.RGBA, weight float64) Swatch {
	return Swatch{
		Hex:    palette.FromRGB(c.R, c.G, c.B).Hex(),
		R:      c.R,
		G:      c.G,
		B:      c.B,
		Weight: weight,
	}
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
