package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/domain/codecommit"
	vo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/infrastructure/persistence/mappers"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	"github.com/cesy/support-board/internal/shared/db"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

type CodeCommitRepository struct {
	db     *gorm.DB
	mapper mappers.CodeCommitMapper
}

func NewCodeCommitRepository(database *gorm.DB) *CodeCommitRepository {
	return &CodeCommitRepository{
		db:     database,
		mapper: mappers.NewCodeCommitMapper(),
	}
}

func (r *CodeCommitRepository) Save(ctx context.Context, c *codecommit.Commit) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save code commit: %w", err)
	}

	return c.SetID(model.ID)
}

// Update persists the commit guarded by its optimistic version, same scheme
// as the ticket repository.
func (r *CodeCommitRepository) Update(ctx context.Context, c *codecommit.Commit) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.CodeCommitModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("Status", "CodeTicketID", "Version", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update code commit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError(
			fmt.Sprintf("code commit %d was modified concurrently", model.ID))
	}

	return nil
}

func (r *CodeCommitRepository) GetByID(ctx context.Context, id uint) (*codecommit.Commit, error) {
	var model models.CodeCommitModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("code commit %d not found", id))
		}
		return nil, fmt.Errorf("failed to find code commit: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *CodeCommitRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*codecommit.Commit, error) {
	var rows []models.CodeCommitModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("code_ticket_id = ?", ticketID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list code commits: %w", err)
	}

	return r.toDomainList(rows)
}

func (r *CodeCommitRepository) ListByStatus(ctx context.Context, status vo.CommitStatus) ([]*codecommit.Commit, error) {
	var rows []models.CodeCommitModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("status = ?", status.String()).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list code commits: %w", err)
	}

	return r.toDomainList(rows)
}

func (r *CodeCommitRepository) CountByStatus(ctx context.Context, status vo.CommitStatus) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.CodeCommitModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count code commits: %w", err)
	}
	return count, nil
}

func (r *CodeCommitRepository) toDomainList(rows []models.CodeCommitModel) ([]*codecommit.Commit, error) {
	commits := make([]*codecommit.Commit, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}
