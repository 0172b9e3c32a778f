package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hueshift/pkg/config"
	"github.com/matzehuels/hueshift/pkg/errors"
	"github.com/matzehuels/hueshift/pkg/inspect"
	hio "github.com/matzehuels/hueshift/pkg/io"
	"github.com/matzehuels/hueshift/pkg/pipeline"
)

// generateOptions holds flag values for the generate command.
type generateOptions struct {
	seed     int64
	howMany  int
	minShift float64
	maxShift float64
	how      float64
	format   string
	out      string
	prefix   string
	workers  int
	noCache  bool
	refresh  bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <image>",
		Short: "Write hue-shifted variants of an image",
		Long: `Generate rotates the hue of every distinct color of an image by a random
amount drawn from [min, max] (fractions of a full turn), once per variant.
The same seed always produces the same variants.`,
		Example: `  hueshift generate sprite.png -n 8 --min 0.1 --max 0.4 --seed 42
  hueshift generate sprite.png --min 0.5 --max 0.5 -o out/
  hueshift generate sprite.png -c recipe.toml --format tiff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyGenerateFlags(cmd, opts, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runGenerate(cmd, args[0], cfg, opts)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&opts.seed, "seed", 0, "random seed")
	f.IntVarP(&opts.howMany, "how-many", "n", 4, "number of variants")
	f.Float64Var(&opts.minShift, "min", 0, "minimum hue shift as a fraction of a turn [0, 1)")
	f.Float64Var(&opts.maxShift, "max", 0.5, "maximum hue shift as a fraction of a turn [0, 1)")
	f.Float64Var(&opts.how, "how", 0, "shaping exponent; the draw is raised to 2^how")
	f.StringVarP(&opts.format, "format", "f", hio.DefaultFormat, "output format: png, jpeg, bmp, tiff")
	f.StringVarP(&opts.out, "out", "o", ".", "output directory")
	f.StringVar(&opts.prefix, "prefix", "", "output file prefix (default: input base name)")
	f.IntVarP(&opts.workers, "workers", "w", 0, "concurrent pixel rewrites (0: one per CPU)")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "regenerate even when cached")

	return cmd
}

// applyGenerateFlags copies explicitly set flags over the recipe.
func applyGenerateFlags(cmd *cobra.Command, opts generateOptions, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("seed") {
		cfg.Generation.Seed = opts.seed
	}
	if f.Changed("how-many") {
		cfg.Generation.HowMany = opts.howMany
	}
	if f.Changed("min") {
		cfg.Generation.MinHueShift = opts.minShift
	}
	if f.Changed("max") {
		cfg.Generation.MaxHueShift = opts.maxShift
	}
	if f.Changed("how") {
		cfg.Generation.HowHueShift = opts.how
	}
	if f.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if f.Changed("out") {
		cfg.Output.Dir = opts.out
	}
	if f.Changed("prefix") {
		cfg.Output.Prefix = opts.prefix
	}
	if f.Changed("workers") {
		cfg.Workers = opts.workers
	}
}

func (c *CLI) runGenerate(cmd *cobra.Command, input string, cfg config.Config, opts generateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := newPrinter(cmd.OutOrStdout())
	prog := newProgress(logger)

	img, srcFormat, err := hio.ImportImage(input)
	if err != nil {
		return err
	}
	logger.Debug("decoded input", "path", input, "format", srcFormat, "width", img.Width, "height", img.Height)

	prefix := cfg.Output.Prefix
	if prefix == "" {
		prefix = hio.Prefix(input)
	}
	if err := errors.ValidatePrefix(prefix); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Generating %d variants...", cfg.Generation.HowMany))
	spinner.Start()
	res, err := runner.Execute(ctx, img, pipeline.Options{
		Params:  cfg.Generation,
		Format:  cfg.Output.Format,
		Refresh: opts.refresh,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	if len(res.Encoded) == 0 {
		out.warning("No variants requested")
		return nil
	}

	paths := make([]string, len(res.Encoded))
	stats := make([]inspect.ShiftStats, len(res.Encoded))
	for i, data := range res.Encoded {
		paths[i] = hio.VariantPath(cfg.Output.Dir, prefix, i, res.Format)
		if err := hio.WriteFile(paths[i], data); err != nil {
			return err
		}
		stats[i] = res.ShiftStats(i)
	}
	prog.done(fmt.Sprintf("Generated %d variants", len(paths)))

	out.success("Wrote %d variants of %s", len(paths), StyleHighlight.Render(input))
	for _, path := range paths {
		out.file(path)
	}
	out.batch(res.Stats.PaletteSize, res.Stats.Variants, res.CacheHit)
	out.line(renderShiftTable(paths, stats))
	return nil
}
