package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	css "github.com/mazznoer/csscolorparser"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hueshift/pkg/core/palette"
	"github.com/matzehuels/hueshift/pkg/core/rotate"
	"github.com/matzehuels/hueshift/pkg/errors"
)

// rotateCommand creates the rotate debug command.
func (c *CLI) rotateCommand() *cobra.Command {
	var fraction bool

	cmd := &cobra.Command{
		Use:   "rotate <color> <amount>",
		Short: "Rotate the hue of a single color",
		Long: `Rotate applies the same HSL hue rotation generate uses to one CSS color
(hex, rgb(), hsl() or a named color) and prints the result.`,
		Example: `  hueshift rotate red 36
  hueshift rotate "#3a7bd5" 0.25 --fraction`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseColor(args[0])
			if err != nil {
				return err
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
				return errors.New(errors.ErrCodeInvalidInput, "amount must be a number, got %q", args[1])
			}
			degrees := amount
			if fraction {
				degrees = rotate.Degrees(amount)
			}

			out := rotate.HSL{}.RotateHue(in, degrees)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
				swatch(in), in.Key().Hex(),
				StyleDim.Render(fmt.Sprintf("%s %.1f°", iconArrow, degrees)),
				swatch(out), StyleHighlight.Render(out.Key().Hex()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fraction, "fraction", false, "treat amount as a fraction of a full turn")
	return cmd
}

// parseColor parses a CSS color, ignoring alpha.
func parseColor(s string) (palette.RGB, error) {
	c, err := css.Parse(s)
	if err != nil {
		return palette.RGB{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse color %q", s)
	}
	return palette.RGB{R: channel(c.R), G: channel(c.G), B: channel(c.B)}, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func swatch(c palette.RGB) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Key().Hex())).Render("  ")
}
