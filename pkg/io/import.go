package io

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/hueshift/pkg/core/raster"
	"github.com/matzehuels/hueshift/pkg/errors"
)

// DefaultMaxPixels bounds Width*Height for [ReadImage].
const DefaultMaxPixels = 1 << 26

// ReadImage decodes an image from r and returns it with the name of the
// detected format. Undecodable input yields an INVALID_FORMAT error; images
// larger than [DefaultMaxPixels] yield INVALID_INPUT.
// ReadImage does not close r.
func ReadImage(r io.Reader) (*raster.Image, string, error) {
	return ReadImageLimit(r, DefaultMaxPixels)
}

// ReadImageLimit is ReadImage with an explicit pixel limit. The header is
// checked before any pixel data is decoded. maxPixels <= 0 means
// [DefaultMaxPixels].
func ReadImageLimit(r io.Reader, maxPixels int64) (*raster.Image, string, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode image")
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > maxPixels {
		return nil, "", errors.New(errors.ErrCodeInvalidInput,
			"image is %dx%d (%d pixels), limit is %d", cfg.Width, cfg.Height, px, maxPixels)
	}

	src, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode image")
	}
	return raster.FromImage(src), format, nil
}

// DecodeBytes is ReadImage over an in-memory buffer.
func DecodeBytes(data []byte) (*raster.Image, string, error) {
	return ReadImage(bytes.NewReader(data))
}

// ImportImage reads the image file at path.
//
// A missing file yields a FILE_NOT_FOUND error; decoding failures are
// reported as by [ReadImage].
func ImportImage(path string) (*raster.Image, string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadImage(f)
}
