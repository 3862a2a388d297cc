package main

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

	"github.com/erazemk/foodshare/internal/api"
)

func serveCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the store and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			closeLog, err := setupLogger(cfg.LogPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			database, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			handler := api.NewRouter(database, api.Options{
				ExpiringDays:      cfg.ExpiringDays,
				ImageMaxDimension: cfg.ImageMaxDimension,
			})

			server := &http.Server{
				Addr:              cfg.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			// Graceful shutdown on SIGINT/SIGTERM.
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				sig := <-quit
				slog.Info("shutdown signal received", "signal", sig.String())

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := server.Shutdown(ctx); err != nil {
					slog.Error("server forced to shutdown", "error", err)
				}
			}()

			slog.Info("server started", "addr", cfg.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			slog.Info("server stopped, closing database")
			return nil
		},
	}

	cmd.Flags().StringP("addr", "a", "", "listen address (default :8080)")
	return cmd
}

func initCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the schema and load the seed files, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			closeLog, err := setupLogger(cfg.LogPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			database, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return database.Close()
		},
	}
}
