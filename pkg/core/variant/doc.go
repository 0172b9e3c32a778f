// Package variant builds hue-shifted variants of an image.
//
// A batch is driven by one seeded [random.Generator] that is never reseeded:
// variant i+1 continues the random sequence where variant i left off, so the
// whole batch is reproducible from [Params.Seed].
//
// For each variant a [Mapping] is built by walking the source palette in
// ascending key order and drawing one rotation per color. The pixel buffer
// is then rewritten through that mapping, so pixels that share a color in
// the source share a color in the output.
//
// # Usage
//
//	images, err := variant.GenerateAlteredImages(img, variant.Params{
//	    Seed:        42,
//	    HowMany:     8,
//	    MinHueShift: 0.05,
//	    MaxHueShift: 0.45,
//	})
//
// [Generator.Run] additionally returns the applied shifts and can spread the
// pixel rewrite over several goroutines. The random draws are always made
// sequentially before any worker starts, so the output does not depend on
// the worker count.
package variant
