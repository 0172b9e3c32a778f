// Package pkg provides the libraries behind hueshift.
//
// # Overview
//
// Hueshift produces recolored variants of an image by rotating the hue of
// each distinct color independently, so that every variant keeps the
// source's shapes, shading and transparency. The pkg directory is organized
// into these areas:
//
//  1. [core] - Domain logic (raster buffer, palette, hue rotation, variants)
//  2. [io] - Image decoding and encoding at the file boundary
//  3. [cache] - Result caching (file, Redis, MongoDB)
//  4. [pipeline] - Orchestration (hash → cache → generate → encode)
//  5. [inspect] - Palette analysis and shift statistics
//  6. [config] - TOML recipe files
//
// # Architecture
//
//	image file
//	     ↓
//	[io] decode to raster.Image
//	     ↓
//	[core/palette] extract distinct colors
//	     ↓
//	[core/variant] one color mapping per variant, then pixel rewrite
//	     ↓
//	[io] encode PNG/JPEG/BMP/TIFF
//
// # Quick Start
//
//	img, _, err := io.ImportImage("sprite.png")
//	if err != nil {
//	    return err
//	}
//	variants, err := variant.GenerateAlteredImages(img, variant.Params{
//	    Seed:        42,
//	    HowMany:     4,
//	    MinHueShift: 0.1,
//	    MaxHueShift: 0.4,
//	})
//
// For caching, worker pools and encoded output use [pipeline.Runner].
//
// # Error Handling
//
// Errors carry machine-readable codes from [errors]; validation failures
// use the INVALID_* codes and are reported before any work is done.
//
// # Observability
//
// [observability] exposes hooks for generation, cache and HTTP events.
package pkg
