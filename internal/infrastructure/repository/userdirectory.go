package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	"github.com/cesy/support-board/internal/shared/db"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

// UserDirectory resolves notification addresses from the account table.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(database *gorm.DB) *UserDirectory {
	return &UserDirectory{db: database}
}

func (d *UserDirectory) EmailForUser(ctx context.Context, userID uint) (string, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, d.db)

	if err := tx.First(&model, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("user %d not found", userID))
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	return model.Email, nil
}
