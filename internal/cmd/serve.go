package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sadopc/swimlog/internal/api"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the practice procedures over HTTP",
		Long: `Serve the practice procedures as JSON over HTTP under /rpc, with
/healthz and Prometheus metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			cfg := env.cfg
			if addr != "" {
				cfg.HTTP.Address = addr
			}
			slog.SetDefault(env.logger)
			if cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			handler := api.NewHandler(env.svc, env.logger)
			router := api.NewRouter(handler, api.RouterOptions{
				Logger:     env.logger,
				CORSOrigin: cfg.HTTP.CORSOrigin,
			})
			server := api.NewServer(api.ServerConfig{
				Address:      cfg.HTTP.Address,
				ReadTimeout:  cfg.HTTP.ReadTimeout,
				WriteTimeout: cfg.HTTP.WriteTimeout,
				IdleTimeout:  cfg.HTTP.IdleTimeout,
			}, router)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			env.logger.Info("swimlog listening", "address", cfg.HTTP.Address, "driver", cfg.Storage.Driver)
			return runServer(ctx, server, env.logger)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.address)")

	return cmd
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	return nil
}
