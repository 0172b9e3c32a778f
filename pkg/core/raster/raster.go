// Package raster defines the RGBA8 image buffer that the variant generator
// reads and writes.
//
// An [Image] stores pixels as interleaved, non-premultiplied R, G, B, A bytes
// in row-major order with no row padding. The buffer length is always
// Width*Height*4; [Image.Validate] enforces this before any processing.
package raster

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/matzehuels/hueshift/pkg/errors"
)

// BytesPerPixel is the stride of one pixel in an [Image] buffer.
const BytesPerPixel = 4

// Image is an RGBA8 raster.
type Image struct {
	Width  int
	Height int
	Buffer []byte
}

// New allocates a zeroed (fully transparent black) image.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Buffer: make([]byte, width*height*BytesPerPixel),
	}
}

// Validate checks that the buffer length matches the declared dimensions.
// It returns an INVALID_DIMENSIONS error otherwise.
func (img *Image) Validate() error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidDimensions, "image is nil")
	}
	if img.Width < 0 || img.Height < 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "negative dimensions %dx%d", img.Width, img.Height)
	}
	if want := img.Width * img.Height * BytesPerPixel; len(img.Buffer) != want {
		return errors.New(errors.ErrCodeInvalidDimensions,
			"buffer length %d does not match %dx%d (want %d)", len(img.Buffer), img.Width, img.Height, want)
	}
	return nil
}

// PixelCount returns Width*Height.
func (img *Image) PixelCount() int {
	return img.Width * img.Height
}

// Clone returns a deep copy with its own buffer.
func (img *Image) Clone() *Image {
	buf := make([]byte, len(img.Buffer))
	copy(buf, img.Buffer)
	return &Image{Width: img.Width, Height: img.Height, Buffer: buf}
}

// Equal reports whether two images have the same dimensions and bytes.
func (img *Image) Equal(other *Image) bool {
	if img.Width != other.Width || img.Height != other.Height || len(img.Buffer) != len(other.Buffer) {
		return false
	}
	for i := range img.Buffer {
		if img.Buffer[i] != other.Buffer[i] {
			return false
		}
	}
	return true
}

// FromImage converts any decoded image into an RGBA8 raster.
// Colors are converted to non-premultiplied 8-bit channels; the origin of
// src.Bounds() becomes (0, 0).
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Stride == b.Dx()*BytesPerPixel && b.Min == (image.Point{}) {
		buf := make([]byte, len(nrgba.Pix))
		copy(buf, nrgba.Pix)
		return &Image{Width: b.Dx(), Height: b.Dy(), Buffer: buf}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Image{Width: b.Dx(), Height: b.Dy(), Buffer: dst.Pix}
}

// NRGBA wraps a copy of the buffer in an *image.NRGBA for encoding.
func (img *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Buffer)
	return out
}
