package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/internal/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /health
  POST /api/parse
  POST /api/layout
  POST /api/render
  GET  /api/diagrams/{id}.{format}

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := c.Config.Server
	if addr != "" {
		cfg.Addr = addr
	}
	c.Logger.Info("starting server", "addr", cfg.Addr, "cache", c.Config.Cache.Backend)
	return server.New(runner, c.Logger, cfg).ListenAndServe(ctx)
}
