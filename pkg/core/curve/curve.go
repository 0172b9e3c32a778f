// Package curve provides shaping functions that redistribute a uniform
// sample in [0, 1) before it is scaled into a target interval.
package curve

import "math"

// Func maps [0, 1) onto [0, 1).
type Func func(x float64) float64

// below1 is the largest float64 strictly less than 1.
var below1 = math.Nextafter(1, 0)

// Identity leaves samples unchanged.
func Identity(x float64) float64 { return clamp(x) }

// Power returns f(x) = x^(2^how).
//
// how == 0 is the identity. Positive values push samples toward 0 (and so
// toward the lower bound of the scaled range), negative values push them
// toward 1. f(0) is always 0 and results never reach 1.
func Power(how float64) Func {
	if how == 0 || math.IsNaN(how) {
		return Identity
	}
	k := math.Exp2(how)
	return func(x float64) float64 {
		return clamp(math.Pow(clamp(x), k))
	}
}

func clamp(x float64) float64 {
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	if x >= 1 {
		return below1
	}
	return x
}
