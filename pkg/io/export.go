package io

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/hueshift/pkg/core/raster"
	"github.com/matzehuels/hueshift/pkg/errors"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// DefaultFormat is used when no output format is given.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatBMP:  true,
	FormatTIFF: true,
}

// extensions maps output formats to file extensions.
var extensions = map[string]string{
	FormatPNG:  ".png",
	FormatJPEG: ".jpg",
	FormatBMP:  ".bmp",
	FormatTIFF: ".tiff",
}

// ValidateFormat checks that format is a supported output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, jpeg, bmp, tiff)", format)
	}
	return nil
}

// WriteImage encodes img in the given format and writes it to w.
func WriteImage(w io.Writer, img *raster.Image, format string) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if format == "" {
		format = DefaultFormat
	}
	if err := ValidateFormat(format); err != nil {
		return err
	}

	m := img.NRGBA()
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, m)
	case FormatJPEG:
		err = jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
	case FormatBMP:
		err = bmp.Encode(w, m)
	case FormatTIFF:
		err = tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// EncodeBytes is WriteImage into a new buffer.
func EncodeBytes(img *raster.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteImage(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportImage writes img to path, creating parent directories as needed.
func ExportImage(img *raster.Image, path, format string) error {
	if err := prepare(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteImage(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteFile writes already encoded image data to path, creating parent
// directories as needed.
func WriteFile(path string, data []byte) error {
	if err := prepare(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func prepare(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	return nil
}

// VariantPath returns the file path for variant index (zero-based) of a
// batch, e.g. out/sprite_003.png for index 2.
func VariantPath(dir, prefix string, index int, format string) string {
	ext, ok := extensions[format]
	if !ok {
		ext = extensions[DefaultFormat]
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%03d%s", prefix, index+1, ext))
}

// Prefix derives a variant file prefix from an input path by stripping the
// directory and extension.
func Prefix(input string) string {
	base := filepath.Base(input)
	return base[:len(base)-len(filepath.Ext(base))]
}
