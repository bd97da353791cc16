package cli

import (
	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve canonicalization over HTTP",
		Long: `Start the HTTP tool server.

  POST /tool          execute a tool call
  POST /canonicalize  canonicalize {"equation": "..."}
  GET  /schema        tool schema for agent registration
  GET  /health        liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return server.New(cfg, a.pipeline(false), a.log).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, \":8080\")")
	return cmd
}
