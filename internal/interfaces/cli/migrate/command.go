package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cesy/support-board/internal/infrastructure/config"
	"github.com/cesy/support-board/internal/infrastructure/database"
	"github.com/cesy/support-board/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema tools",
	}

	cmd.AddCommand(
		newUpCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create or update the workflow tables",
		RunE:  runUp,
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(database.Get()); err != nil {
		return err
	}

	logger.NewLogger().Infow("schema migration complete", "driver", cfg.Database.Driver)
	return nil
}
