package commits

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	ccusecases "github.com/cesy/support-board/internal/application/codecommit/usecases"
	"github.com/cesy/support-board/internal/application/notify"
	"github.com/cesy/support-board/internal/infrastructure/config"
	"github.com/cesy/support-board/internal/infrastructure/database"
	"github.com/cesy/support-board/internal/infrastructure/email"
	"github.com/cesy/support-board/internal/infrastructure/permission"
	"github.com/cesy/support-board/internal/infrastructure/repository"
	"github.com/cesy/support-board/internal/shared/db"
	"github.com/cesy/support-board/internal/shared/logger"
	"github.com/cesy/support-board/internal/shared/markdown"
)

var (
	author  string
	message string
)

// NewCommand wires the commit ingestion entry point: the push hook calls
// this once per commit.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commits",
		Short: "Commit intake tools",
	}

	ingest := &cobra.Command{
		Use:   "ingest",
		Short: "Record a pushed commit and auto-link it to its ticket",
		RunE:  runIngest,
	}
	ingest.Flags().StringVar(&author, "author", "", "Commit author name (required)")
	ingest.Flags().StringVar(&message, "message", "", "Commit message")
	ingest.MarkFlagRequired("author")

	cmd.AddCommand(ingest)
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	gormDB := database.Get()
	identities := repository.NewSupportIdentityRepository(gormDB)
	directory := repository.NewUserDirectory(gormDB)
	watches := repository.NewCodeWatchRepository(gormDB)

	oracle, err := permission.NewOracle(
		gormDB, identities, directory, cfg.Workflow.FallbackAdminIdentity, log)
	if err != nil {
		return err
	}

	mailer := email.NewCodeTicketMailer(email.SMTPConfig{
		Host:        cfg.Email.Host,
		Port:        cfg.Email.Port,
		Username:    cfg.Email.Username,
		Password:    cfg.Email.Password,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		BaseURL:     cfg.Email.BaseURL,
	}, markdown.NewService())

	dispatcher := notify.NewDispatcher(mailer, watches, identities, directory, log)

	uc := ccusecases.NewIngestCommitUseCase(
		repository.NewCodeCommitRepository(gormDB),
		repository.NewCodeTicketRepository(gormDB),
		repository.NewCodeDetailRepository(gormDB),
		identities,
		oracle,
		db.NewTransactionManager(gormDB),
		dispatcher,
		log,
	)

	result, err := uc.Execute(context.Background(), ccusecases.IngestCommitCommand{
		Author:  author,
		Message: message,
	})
	if err != nil {
		return err
	}

	log.Infow("commit recorded",
		"commit_id", result.CommitID, "identity_id", result.IdentityID,
		"linked", result.LinkedTicketID != nil)
	return nil
}
