package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/infrastructure/persistence/mappers"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	"github.com/cesy/support-board/internal/shared/db"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

type SupportIdentityRepository struct {
	db     *gorm.DB
	mapper mappers.SupportIdentityMapper
}

func NewSupportIdentityRepository(database *gorm.DB) *SupportIdentityRepository {
	return &SupportIdentityRepository{
		db:     database,
		mapper: mappers.NewSupportIdentityMapper(),
	}
}

func (r *SupportIdentityRepository) Save(ctx context.Context, si *identity.SupportIdentity) error {
	model := r.mapper.ToModel(si)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save support identity: %w", err)
	}

	return si.SetID(model.ID)
}

func (r *SupportIdentityRepository) Update(ctx context.Context, si *identity.SupportIdentity) error {
	model := r.mapper.ToModel(si)
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.SupportIdentityModel{}).
		Where("id = ?", model.ID).
		Select("Name", "UserID", "UpdatedAt").
		Updates(model).Error
	if err != nil {
		return fmt.Errorf("failed to update support identity: %w", err)
	}
	return nil
}

func (r *SupportIdentityRepository) GetByID(ctx context.Context, id uint) (*identity.SupportIdentity, error) {
	var model models.SupportIdentityModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("support identity %d not found", id))
		}
		return nil, fmt.Errorf("failed to find support identity: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// GetByName matches the identity name exactly (case-sensitive).
func (r *SupportIdentityRepository) GetByName(ctx context.Context, name string) (*identity.SupportIdentity, error) {
	var model models.SupportIdentityModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("name = ?", name).
		First(&model).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("support identity %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find support identity: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *SupportIdentityRepository) GetByUserID(ctx context.Context, userID uint) (*identity.SupportIdentity, error) {
	var model models.SupportIdentityModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("user_id = ?", userID).
		First(&model).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("support identity for user %d not found", userID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find support identity: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
