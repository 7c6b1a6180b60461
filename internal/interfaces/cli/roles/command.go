package roles

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cesy/support-board/internal/infrastructure/config"
	"github.com/cesy/support-board/internal/infrastructure/database"
	"github.com/cesy/support-board/internal/infrastructure/permission"
	"github.com/cesy/support-board/internal/infrastructure/repository"
	"github.com/cesy/support-board/internal/shared/logger"
)

var (
	userID uint
	role   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Manage support capability roles",
	}

	grant := &cobra.Command{
		Use:   "grant",
		Short: "Grant a support role to a user",
		RunE:  runGrant,
	}
	revoke := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke a support role from a user",
		RunE:  runRevoke,
	}

	for _, c := range []*cobra.Command{grant, revoke} {
		c.Flags().UintVar(&userID, "user", 0, "User ID (required)")
		c.Flags().StringVar(&role, "role", permission.RoleVolunteer,
			fmt.Sprintf("Role name (%s or %s)", permission.RoleVolunteer, permission.RoleAdmin))
		c.MarkFlagRequired("user")
	}

	cmd.AddCommand(grant, revoke)
	return cmd
}

func runGrant(cmd *cobra.Command, args []string) error {
	oracle, cleanup, err := initOracle()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := oracle.GrantRole(userID, role); err != nil {
		return err
	}
	logger.NewLogger().Infow("role granted", "user_id", userID, "role", role)
	return nil
}

func runRevoke(cmd *cobra.Command, args []string) error {
	oracle, cleanup, err := initOracle()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := oracle.RevokeRole(userID, role); err != nil {
		return err
	}
	logger.NewLogger().Infow("role revoked", "user_id", userID, "role", role)
	return nil
}

func initOracle() (*permission.Oracle, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	db := database.Get()
	oracle, err := permission.NewOracle(
		db,
		repository.NewSupportIdentityRepository(db),
		repository.NewUserDirectory(db),
		cfg.Workflow.FallbackAdminIdentity,
		logger.NewLogger(),
	)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	return oracle, func() { database.Close() }, nil
}
