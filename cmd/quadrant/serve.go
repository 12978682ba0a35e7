package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quadrant-analyzer/internal/logger"
	"quadrant-analyzer/internal/server"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quadrant engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.remote != nil {
				return errors.New("serve runs the local engine and cannot be combined with --server")
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			srv := server.New(server.Config{
				Addr:           addr,
				AllowedOrigins: a.cfg.Server.AllowedOrigins,
				RequestTimeout: time.Duration(a.cfg.Server.RequestTimeoutSeconds) * time.Second,
				Analyzer:       a.analyzer,
				Rules:          a.local.Calculator().ScoringRules(),
				Matrix:         a.local.Classifier().MatrixLayout(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				errc <- srv.Start()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info(cmd.Context(), "Shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
