package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"buildyourcv/internal/bootstrap"
	"buildyourcv/internal/shared/config"
	"buildyourcv/internal/shared/server"
	"buildyourcv/internal/shared/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var servePort string

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	telemetry.SetLevel(cfg.LogLevel)

	app, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{
			"addr":         srv.Addr,
			"env":          cfg.Env,
			"llm_provider": cfg.LLMProvider,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	telemetry.Info("server.shutdown", map[string]any{"addr": srv.Addr})
	return srv.Shutdown(shutdownCtx)
}
