package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/domain/releasenote"
	"github.com/cesy/support-board/internal/infrastructure/persistence/mappers"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	"github.com/cesy/support-board/internal/shared/db"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

type ReleaseNoteRepository struct {
	db     *gorm.DB
	mapper mappers.ReleaseNoteMapper
}

func NewReleaseNoteRepository(database *gorm.DB) *ReleaseNoteRepository {
	return &ReleaseNoteRepository{
		db:     database,
		mapper: mappers.NewReleaseNoteMapper(),
	}
}

func (r *ReleaseNoteRepository) Save(ctx context.Context, n *releasenote.Note) error {
	model := r.mapper.ToModel(n)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save release note: %w", err)
	}

	return n.SetID(model.ID)
}

func (r *ReleaseNoteRepository) Update(ctx context.Context, n *releasenote.Note) error {
	model := r.mapper.ToModel(n)
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.ReleaseNoteModel{}).
		Where("id = ?", model.ID).
		Select("Release", "Content", "Posted", "UpdatedAt").
		Updates(model).Error
	if err != nil {
		return fmt.Errorf("failed to update release note: %w", err)
	}
	return nil
}

func (r *ReleaseNoteRepository) GetByID(ctx context.Context, id uint) (*releasenote.Note, error) {
	var model models.ReleaseNoteModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("release note %d not found", id))
		}
		return nil, fmt.Errorf("failed to find release note: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ReleaseNoteRepository) List(ctx context.Context, postedOnly bool) ([]*releasenote.Note, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ReleaseNoteModel{}).Order("id DESC")
	if postedOnly {
		query = query.Where("posted = ?", true)
	}

	var rows []models.ReleaseNoteModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list release notes: %w", err)
	}

	notes := make([]*releasenote.Note, 0, len(rows))
	for i := range rows {
		n, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}
