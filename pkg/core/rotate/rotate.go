// Package rotate rotates colors around the hue circle and selects how far
// each palette color is rotated.
//
// The color math sits behind the narrow [Rotator] interface; [HSL] is the
// default implementation, backed by go-colorful. [Picker] holds the only
// logic this package adds on top: a fixed amount when the shift range is
// degenerate, otherwise one shaped random draw per call.
package rotate

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/hueshift/pkg/core/curve"
	"github.com/matzehuels/hueshift/pkg/core/palette"
	"github.com/matzehuels/hueshift/pkg/core/random"
)

// FullTurn is the number of degrees in one hue revolution.
const FullTurn = 360.0

// Rotator rotates the hue of a color by a number of degrees.
type Rotator interface {
	RotateHue(c palette.RGB, degrees float64) palette.RGB
}

// HSL rotates hue in the HSL color space, keeping saturation and lightness.
type HSL struct{}

// RotateHue implements [Rotator]. A rotation that is a whole number of turns
// returns c unchanged.
func (HSL) RotateHue(c palette.RGB, degrees float64) palette.RGB {
	deg := math.Mod(degrees, FullTurn)
	if deg == 0 || math.IsNaN(deg) {
		return c
	}
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := col.Hsl()
	h = math.Mod(h+deg, FullTurn)
	if h < 0 {
		h += FullTurn
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return palette.RGB{R: r, G: g, B: b}
}

// Degrees converts a fraction of a full turn to degrees.
func Degrees(fraction float64) float64 {
	return fraction * FullTurn
}

// Picker selects rotation amounts within [Min, Max] (fractions of a turn).
type Picker struct {
	Min   float64
	Max   float64
	Curve curve.Func
	Rand  random.Source
}

// NewPicker builds a picker. A nil shape means the identity curve.
func NewPicker(lo, hi float64, shape curve.Func, src random.Source) *Picker {
	if shape == nil {
		shape = curve.Identity
	}
	return &Picker{Min: lo, Max: hi, Curve: shape, Rand: src}
}

// Fixed reports whether every call yields the same amount without drawing.
func (p *Picker) Fixed() bool {
	return p.Min == p.Max
}

// Next returns the next rotation in degrees. When the range is fixed no
// random value is consumed.
func (p *Picker) Next() float64 {
	lo, hi := Degrees(p.Min), Degrees(p.Max)
	if p.Fixed() {
		return lo
	}
	d := random.Ranged(lo, hi, func() float64 { return p.Curve(p.Rand.Float64()) })
	return max(lo, min(d, hi))
}

// Transform pairs a Rotator with a Picker.
type Transform struct {
	Rotator Rotator
	Picker  *Picker
}

// Apply rotates c by the next picked amount and returns the new color and
// the degrees applied.
func (t Transform) Apply(c palette.RGB) (palette.RGB, float64) {
	deg := t.Picker.Next()
	return t.Rotator.RotateHue(c, deg), deg
}
