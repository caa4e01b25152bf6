package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldshape/mlca/internal/api"
)

// serveCommand creates the serve command: the analysis HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	addr := ":8080"

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Long: `Serve starts an HTTP server exposing plan analysis.

Endpoints:
  POST /api/v1/analyze   score a plan export (request body), options via
                         query parameters (xw, yw, xs, ys)
  GET  /healthz          liveness check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(c.Logger, c.Config.Scoring),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving analysis API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
