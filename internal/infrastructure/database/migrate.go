package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates the workflow tables.
func AutoMigrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.CodeTicketModel{},
		&models.CodeDetailModel{},
		&models.CodeVoteModel{},
		&models.CodeWatchModel{},
		&models.CodeCommitModel{},
		&models.SupportIdentityModel{},
		&models.ReleaseNoteModel{},
		&models.SupportTicketModel{},
		&models.UserModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
