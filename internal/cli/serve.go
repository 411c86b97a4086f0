package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rootfront/internal/server"
	"github.com/matzehuels/rootfront/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		origins []string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long: `Serve exposes analyze, front and render as JSON endpoints under /v1, plus
/healthz and /version. Settings come from the [server] config section. Use a
redis cache backend to share computed fronts between several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("origin") {
				cfg.Server.Origins = origins
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
			printInfo("Listening on %s", StyleHighlight.Render(cfg.Server.Addr))
			printDetail("cache: %s · unit: %s", cfg.Cache.Backend, cfg.Scale.Unit)
			return server.New(runner, cfg, c.Logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "allowed CORS origin (repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the front cache")

	return cmd
}
