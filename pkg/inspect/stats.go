package inspect

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ShiftStats summarises hue rotations in degrees.
type ShiftStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Shifts computes statistics over the rotations applied by one variant.
// An empty slice yields the zero value.
func Shifts(degrees []float64) ShiftStats {
	if len(degrees) == 0 {
		return ShiftStats{}
	}
	s := ShiftStats{
		Count: len(degrees),
		Min:   floats.Min(degrees),
		Max:   floats.Max(degrees),
	}
	if len(degrees) == 1 {
		s.Mean = degrees[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(degrees, nil)
	return s
}
