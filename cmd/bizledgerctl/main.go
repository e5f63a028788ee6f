package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/core/services"
	"github.com/SscSPs/bizledger/internal/platform/config"
	"github.com/SscSPs/bizledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/bizledger/pkg/database"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var (
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bizledgerctl",
	Short: "Operator tooling for the BizLedger service",
	Long: `bizledgerctl runs maintenance tasks against the BizLedger database:
schema migrations, inventory reprocessing for bills whose stock side effect
was skipped, and the overdue bill sweep.

Configuration is read from the same environment variables (and .env file)
as the server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func main() {
	slog.SetDefault(logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// withServices opens a pool, builds the service container and hands it to fn.
func withServices(ctx context.Context, fn func(*portssvc.ServiceContainer) error) error {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)

	return fn(services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool)))
}
