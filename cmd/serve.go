package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/api"
	"github.com/kellen/chronos/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat, quiz and certificate API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Addr
		}

		logger := config.NewLogger(os.Stdout, cfg.LogLevel)
		slog.SetDefault(logger)

		d, err := buildDeps(cmd, logger)
		if err != nil {
			return err
		}
		defer d.close()

		server := api.New(api.Options{
			Machine:        d.machine,
			Catalog:        d.catalog,
			Opener:         d.opener,
			Events:         d.events,
			AllowedOrigins: cfg.AllowedOrigins,
			Logger:         logger,
		})
		defer server.Close()

		srv := &http.Server{
			Addr:              addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", addr, "catalog", d.catalog.Version())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides CHRONOS_ADDR)")
}
