package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hueshift/internal/server"
	"github.com/matzehuels/hueshift/pkg/cache"
	"github.com/matzehuels/hueshift/pkg/observability"
)

// apiKeyScope namespaces API cache entries in a backend shared with the CLI.
const apiKeyScope = "api"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes variant generation over HTTP:

  POST /v1/variants  multipart "image" plus seed, how_many, min_hue_shift,
                     max_hue_shift, how_hue_shift, format, refresh
  POST /v1/palette   multipart "image" plus method, count, refresh
  GET  /healthz
  GET  /version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(nil, apiKeyScope)

			if c.verbose {
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}

			srv := server.New(runner, cfg.Server, c.Logger)
			newPrinter(cmd.OutOrStdout()).info("Serving on %s (backend: %s)", StyleHighlight.Render(srv.Addr()), cfg.Cache.Backend)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
