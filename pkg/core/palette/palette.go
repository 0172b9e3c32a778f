// Package palette encodes 8-bit RGB triples as integer keys and extracts the
// set of distinct colors present in an image.
//
// The key is a plain bit packing (r<<16 | g<<8 | b), so [FromRGB] and
// [Key.RGB] are exact inverses for every triple.
package palette

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/hueshift/pkg/core/raster"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Key returns the packed color key of c.
func (c RGB) Key() Key {
	return FromRGB(c.R, c.G, c.B)
}

// Key is a lossless packed encoding of an RGB triple.
type Key uint32

// FromRGB packs a triple into a Key.
func FromRGB(r, g, b uint8) Key {
	return Key(r)<<16 | Key(g)<<8 | Key(b)
}

// RGB unpacks k.
func (k Key) RGB() RGB {
	return RGB{R: uint8(k >> 16), G: uint8(k >> 8), B: uint8(k)}
}

// Hex formats k as #rrggbb.
func (k Key) Hex() string {
	return fmt.Sprintf("#%06x", uint32(k)&0xffffff)
}

// Palette is the set of distinct colors in one image.
type Palette struct {
	keys map[Key]struct{}
}

// New builds a palette from explicit keys. Duplicates collapse.
func New(keys ...Key) Palette {
	p := Palette{keys: make(map[Key]struct{}, len(keys))}
	for _, k := range keys {
		p.keys[k] = struct{}{}
	}
	return p
}

// Extract scans img once and collects the RGB key of every pixel.
// Alpha is ignored. A zero-pixel image yields an empty palette.
func Extract(img *raster.Image) Palette {
	p := Palette{keys: make(map[Key]struct{})}
	buf := img.Buffer
	for i := 0; i+3 < len(buf); i += raster.BytesPerPixel {
		p.keys[FromRGB(buf[i], buf[i+1], buf[i+2])] = struct{}{}
	}
	return p
}

// Len returns the number of distinct colors.
func (p Palette) Len() int {
	return len(p.keys)
}

// Contains reports whether k is in the palette.
func (p Palette) Contains(k Key) bool {
	_, ok := p.keys[k]
	return ok
}

// Keys returns the colors in ascending key order. This is the canonical
// enumeration order used when drawing per-color random shifts.
func (p Palette) Keys() []Key {
	return slices.Sorted(maps.Keys(p.keys))
}
