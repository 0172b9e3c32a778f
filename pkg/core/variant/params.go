package variant

import (
	"math"

	"github.com/matzehuels/hueshift/pkg/errors"
)

// Params configures one batch.
type Params struct {
	// Seed drives every random draw of the batch.
	Seed int64 `json:"seed" toml:"seed"`
	// HowMany is the number of variants to produce.
	HowMany int `json:"how_many" toml:"how_many"`
	// MinHueShift and MaxHueShift bound the rotation as fractions of a full
	// turn in [0, 1). Equal bounds give a fixed, non-random shift.
	MinHueShift float64 `json:"min_hue_shift" toml:"min_hue_shift"`
	MaxHueShift float64 `json:"max_hue_shift" toml:"max_hue_shift"`
	// HowHueShift shapes the random draw before scaling; see curve.Power.
	HowHueShift float64 `json:"how_hue_shift" toml:"how_hue_shift"`
}

// Validate checks the parameters without modifying them.
// min > max is rejected with INVALID_RANGE; it is never swapped or clamped.
func (p Params) Validate() error {
	if p.HowMany < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "how_many must be >= 0, got %d", p.HowMany)
	}
	if err := checkFraction("min_hue_shift", p.MinHueShift); err != nil {
		return err
	}
	if err := checkFraction("max_hue_shift", p.MaxHueShift); err != nil {
		return err
	}
	if p.MinHueShift > p.MaxHueShift {
		return errors.New(errors.ErrCodeInvalidRange,
			"min_hue_shift %v > max_hue_shift %v", p.MinHueShift, p.MaxHueShift)
	}
	if math.IsNaN(p.HowHueShift) || math.IsInf(p.HowHueShift, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "how_hue_shift must be finite")
	}
	return nil
}

// FixedShift reports whether the batch applies one uniform rotation.
func (p Params) FixedShift() bool {
	return p.MinHueShift == p.MaxHueShift
}

func checkFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "%s must be in [0, 1), got %v", name, v)
	}
	return nil
}
