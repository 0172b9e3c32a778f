// Package cli implements the hueshift command-line interface.
//
// # Commands
//
//   - generate: write hue-shifted variants of an image
//   - palette: report the colors of an image
//   - rotate: rotate the hue of a single CSS color
//   - serve: run the HTTP API
//   - cache: inspect or clear the local cache
//
// All commands support --verbose (-v) for debug-level logging and --config
// for a TOML recipe. Flags given on the command line override the recipe.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hueshift/pkg/buildinfo"
	"github.com/matzehuels/hueshift/pkg/cache"
	"github.com/matzehuels/hueshift/pkg/config"
	"github.com/matzehuels/hueshift/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "hueshift"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Hueshift generates palette-coherent hue variants of images",
		Long:         `Hueshift rotates the hue of every distinct color in an image by a seeded random amount, producing recolored variants whose shapes, shading and transparency are untouched.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML recipe file")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.rotateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig returns the recipe named by --config, or the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc := cfg.Cache
	if noCache {
		cc.Backend = cache.BackendNone
	}
	store, err := cc.Open(ctx)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, nil, c.Logger)
	r.Workers = cfg.EffectiveWorkers()
	r.TTL = cfg.Cache.TTL
	return r, nil
}
