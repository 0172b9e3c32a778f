package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hueshift/pkg/inspect"
	hio "github.com/matzehuels/hueshift/pkg/io"
)

// paletteCommand creates the palette command.
func (c *CLI) paletteCommand() *cobra.Command {
	var (
		method  string
		count   int
		asJSON  bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Report the colors of an image",
		Long: `Palette counts the distinct colors of an image and lists its dominant
colors, found by weighted histogram (dominant) or k-means clustering (kmeans).`,
		Example: `  hueshift palette sprite.png
  hueshift palette photo.jpg --method kmeans --count 5 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			img, _, err := hio.ImportImage(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer runner.Close()

			report, hit, err := runner.Palette(ctx, img, inspect.Options{
				Method: inspect.Method(method),
				Count:  count,
			}, refresh)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			out := newPrinter(cmd.OutOrStdout())
			out.keyValue("Image", args[0])
			out.keyValue("Size", fmt.Sprintf("%dx%d", report.Width, report.Height))
			out.keyValue("Colors", StyleNumber.Render(fmt.Sprint(report.Distinct)))
			out.keyValue("Method", string(report.Method))
			if hit {
				out.keyValue("Source", styleCached.Render(iconCached))
			}
			out.line(renderSwatchTable(report.Swatches))
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", string(inspect.MethodDominant), "dominant or kmeans")
	cmd.Flags().IntVarP(&count, "count", "k", inspect.DefaultCount, "number of dominant colors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}
