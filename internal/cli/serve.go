package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squarify/pkg/api"
	"github.com/matzehuels/squarify/pkg/observability"
)

// shutdownTimeout bounds how long in-flight requests may finish after an
// interrupt.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Layouts are computed through the configured cache and kept in the configured
store (memory or mongo). The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return c.runServe(cmd.Context(), ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// runServe serves the API on ln until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, ln net.Listener) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		ln.Close()
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := c.newStore(ctx)
	if err != nil {
		ln.Close()
		return err
	}
	defer store.Close(context.Background())

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetLayoutHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := &http.Server{
		Handler:           api.New(runner, store, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	printSuccess("Serving layout API")
	printKeyValue("Address", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue("Cache", c.Config.Cache.Backend)
	printKeyValue("Storage", c.Config.Storage.Backend)
	c.Logger.Info("server starting", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
