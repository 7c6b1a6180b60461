package releases

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	rnusecases "github.com/cesy/support-board/internal/application/releasenote/usecases"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/infrastructure/config"
	"github.com/cesy/support-board/internal/infrastructure/database"
	"github.com/cesy/support-board/internal/infrastructure/repository"
	"github.com/cesy/support-board/internal/shared/db"
	"github.com/cesy/support-board/internal/shared/logger"
	"github.com/cesy/support-board/internal/shared/markdown"
)

var (
	release    string
	content    string
	identityID uint
	postedOnly bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "releases",
		Short: "Release note tools",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Draft a release note",
		RunE:  runCreate,
	}
	create.Flags().StringVar(&release, "release", "", "Release label (required)")
	create.Flags().StringVar(&content, "content", "", "Note body in markdown")
	create.Flags().UintVar(&identityID, "identity", 0, "Acting support identity ID (required)")
	create.MarkFlagRequired("release")
	create.MarkFlagRequired("identity")

	list := &cobra.Command{
		Use:   "list",
		Short: "List release notes",
		RunE:  runList,
	}
	list.Flags().BoolVar(&postedOnly, "posted", false, "Only posted notes")

	cmd.AddCommand(create, list)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	gormDB, log, cleanup, err := initEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	uc := rnusecases.NewCreateNoteUseCase(
		repository.NewReleaseNoteRepository(gormDB),
		db.NewTransactionManager(gormDB),
		log,
	)

	// The CLI runs with operator privileges.
	actor := identity.Actor{
		SupportIdentityID: identityID,
		Capabilities:      identity.Capabilities{IsVolunteer: true, IsAdmin: true},
	}

	result, err := uc.Execute(context.Background(), rnusecases.CreateNoteCommand{
		Release: release,
		Content: content,
		Actor:   actor,
	})
	if err != nil {
		return err
	}

	log.Infow("release note drafted", "note_id", result.NoteID, "release", result.Release)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	gormDB, log, cleanup, err := initEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	uc := rnusecases.NewListNotesUseCase(
		repository.NewReleaseNoteRepository(gormDB),
		markdown.NewService(),
		log,
	)

	result, err := uc.Execute(context.Background(), rnusecases.ListNotesQuery{PostedOnly: postedOnly})
	if err != nil {
		return err
	}

	for _, n := range result.Notes {
		marker := " "
		if n.Posted {
			marker = "*"
		}
		fmt.Printf("%s %d\t%s\t%s\n", marker, n.NoteID, n.Release, n.CreatedAt)
	}
	return nil
}

func initEnv() (gormDB *gorm.DB, log logger.Interface, cleanup func(), err error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return database.Get(), logger.NewLogger(), func() { database.Close() }, nil
}
