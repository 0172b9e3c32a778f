// Package io decodes source images into rasters and encodes generated
// variants back into image files.
//
// # Import
//
// Use [ImportImage] to read an image from a file path, or [ReadImage] to
// read from any io.Reader. PNG, JPEG, GIF, BMP, TIFF and WebP inputs are
// accepted; the first frame of an animated GIF is used. Every input is
// converted to a non-premultiplied RGBA8 [raster.Image]:
//
//	img, format, err := io.ImportImage("sprite.png")
//
// # Export
//
// Use [ExportImage] to write a raster to a file, or [WriteImage] to write to
// any io.Writer. Supported output formats are png (default), jpeg, bmp and
// tiff. JPEG drops the alpha channel, so png is the only format that keeps
// variants byte-exact.
//
//	err := io.ExportImage(variant, io.VariantPath("out", "sprite", 3, "png"), "png")
//
// [raster.Image]: github.com/matzehuels/hueshift/pkg/core/raster.Image
package io
