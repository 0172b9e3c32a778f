// Package core holds the variant generation domain logic.
//
// The subpackages are layered leaf-first:
//
//	raster   RGBA8 image buffer
//	random   seeded float sequence
//	curve    shaping curves for random samples
//	palette  color keys and palette extraction
//	rotate   hue rotation and shift selection
//	variant  per-variant mapping and the batch orchestrator
//
// Nothing under core performs I/O or logs. Decoding, caching and output are
// handled by [github.com/matzehuels/hueshift/pkg/io] and
// [github.com/matzehuels/hueshift/pkg/pipeline].
package core
