// Command foodshare serves and reports on the food redistribution store.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/foodshare/internal/config"
	"github.com/erazemk/foodshare/internal/db"
	"github.com/erazemk/foodshare/internal/seed"
	"github.com/erazemk/foodshare/internal/store"
)

// Version is set at build time.
var Version = "dev"

// options holds the global flags. Flags that were set override the
// configuration file and environment.
type options struct {
	configPath string
	dbPath     string
	seedDir    string
	logPath    string
	logLevel   string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "foodshare",
		Short: "Local food redistribution store",
		Long: `Foodshare keeps track of food providers, receivers, surplus food listings
and the claims made against them. On first start an empty store is
populated from four CSV seed files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	flags.StringVarP(&opts.dbPath, "db", "d", "", "SQLite database path (default foodshare.sqlite3)")
	flags.StringVarP(&opts.seedDir, "seed-dir", "s", "", "directory holding the CSV seed files (default .)")
	flags.StringVarP(&opts.logPath, "log", "l", "", "log file path (default: stdout/stderr only)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default info)")

	cmd.AddCommand(
		serveCmd(opts),
		initCmd(opts),
		reportCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "foodshare version %s\n", Version)
			},
		},
	)

	return cmd
}

// loadConfig reads the configuration and applies any flags that were set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = opts.dbPath
	}
	if flags.Changed("seed-dir") {
		cfg.SeedDir = opts.seedDir
	}
	if flags.Changed("log") {
		cfg.LogPath = opts.logPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the database and bootstraps it from the seed directory.
// A LoadError aborts: the store is left empty and the caller must exit.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	result, err := seed.Bootstrap(ctx, database, cfg.SeedDir)
	if err != nil {
		database.Close()
		var loadErr *seed.LoadError
		if errors.As(err, &loadErr) {
			slog.Error("seed load failed", "file", loadErr.File, "line", loadErr.Line, "error", loadErr.Err)
		}
		return nil, fmt.Errorf("bootstrapping store: %w", err)
	}

	if result.Seeded {
		slog.Info("store seeded", "dir", cfg.SeedDir)
	} else if seededAt, ok, err := store.GetSetting(ctx, database, store.SettingSeededAt); err == nil && ok {
		slog.Info("using existing store", "seeded_at", seededAt)
	}
	slog.Info("database ready", "path", cfg.DBPath)
	return database, nil
}
