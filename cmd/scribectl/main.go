// Command scribectl runs maintenance tasks against the scribe database:
// migrations, occurrence recounts, spreadsheet imports and editor accounts.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yadascribe/scribe-backend/internal/adapter/postgres"
	"github.com/yadascribe/scribe-backend/internal/app"
	"github.com/yadascribe/scribe-backend/internal/config"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "scribectl",
		Short:        "Maintenance commands for the scribe glossary database",
		SilenceUsage: true,
		Version:      app.BuildVersion(),
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(recountCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(userCmd())

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// env is what most subcommands need: config, a logger and a pool.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

func openEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database, "scribectl")
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, pool: pool}, nil
}

func (e *env) services() *app.Services {
	return app.NewServices(e.logger, e.cfg, e.pool)
}

func (e *env) Close() {
	e.pool.Close()
}
