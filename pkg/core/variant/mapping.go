package variant

import (
	"maps"
	"slices"

	"github.com/matzehuels/hueshift/pkg/core/palette"
	"github.com/matzehuels/hueshift/pkg/core/raster"
	"github.com/matzehuels/hueshift/pkg/core/rotate"
	"github.com/matzehuels/hueshift/pkg/errors"
)

// Mapping sends every color of the source palette to its replacement.
// It is total over the palette it was built from but not necessarily
// injective.
type Mapping struct {
	colors  map[palette.Key]palette.Key
	degrees map[palette.Key]float64
}

// BuildMapping walks pal in ascending key order and rotates each color
// through t, so a fixed seed always pairs the same draw with the same color.
func BuildMapping(pal palette.Palette, t rotate.Transform) Mapping {
	m := Mapping{
		colors:  make(map[palette.Key]palette.Key, pal.Len()),
		degrees: make(map[palette.Key]float64, pal.Len()),
	}
	for _, key := range pal.Keys() {
		out, deg := t.Apply(key.RGB())
		m.colors[key] = out.Key()
		m.degrees[key] = deg
	}
	return m
}

// Len returns the number of mapped colors.
func (m Mapping) Len() int {
	return len(m.colors)
}

// Lookup returns the replacement for k.
func (m Mapping) Lookup(k palette.Key) (palette.Key, bool) {
	out, ok := m.colors[k]
	return out, ok
}

// Degrees returns the rotation applied to k.
func (m Mapping) Degrees(k palette.Key) (float64, bool) {
	d, ok := m.degrees[k]
	return d, ok
}

// Shifts lists the applied rotations in ascending key order.
func (m Mapping) Shifts() []float64 {
	keys := slices.Sorted(maps.Keys(m.colors))
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = m.degrees[k]
	}
	return out
}

// Apply rewrites img through m into a freshly allocated image. Alpha bytes
// are copied unchanged and img is not modified.
//
// A pixel whose color is missing from m yields a KEY_LOOKUP error; this only
// happens if m was built from a different palette.
func Apply(img *raster.Image, m Mapping) (*raster.Image, error) {
	out := &raster.Image{
		Width:  img.Width,
		Height: img.Height,
		Buffer: make([]byte, len(img.Buffer)),
	}
	src, dst := img.Buffer, out.Buffer
	for i := 0; i+3 < len(src); i += raster.BytesPerPixel {
		key := palette.FromRGB(src[i], src[i+1], src[i+2])
		mapped, ok := m.colors[key]
		if !ok {
			return nil, errors.New(errors.ErrCodeKeyLookup,
				"color %s at pixel %d is missing from the mapping", key.Hex(), i/raster.BytesPerPixel)
		}
		c := mapped.RGB()
		dst[i] = c.R
		dst[i+1] = c.G
		dst[i+2] = c.B
		dst[i+3] = src[i+3]
	}
	return out, nil
}
