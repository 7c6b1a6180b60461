package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/infrastructure/persistence/mappers"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	"github.com/cesy/support-board/internal/shared/db"
)

type CodeVoteRepository struct {
	db     *gorm.DB
	mapper mappers.CodeTicketMapper
}

func NewCodeVoteRepository(database *gorm.DB) *CodeVoteRepository {
	return &CodeVoteRepository{
		db:     database,
		mapper: mappers.NewCodeTicketMapper(),
	}
}

func (r *CodeVoteRepository) Save(ctx context.Context, v *codeticket.Vote) error {
	model := r.mapper.VoteToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save code vote: %w", err)
	}

	return v.SetID(model.ID)
}

func (r *CodeVoteRepository) FindByTicketAndUser(ctx context.Context, ticketID, userID uint) (*codeticket.Vote, error) {
	var model models.CodeVoteModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("code_ticket_id = ? AND user_id = ?", ticketID, userID).
		First(&model).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find code vote: %w", err)
	}

	return r.mapper.VoteToDomain(&model)
}

func (r *CodeVoteRepository) SumByTicketID(ctx context.Context, ticketID uint) (int, error) {
	var sum int64
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.CodeVoteModel{}).
		Where("code_ticket_id = ?", ticketID).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum code votes: %w", err)
	}

	return int(sum), nil
}

func (r *CodeVoteRepository) ReassignTicket(ctx context.Context, fromTicketID, toTicketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.CodeVoteModel{}).
		Where("code_ticket_id = ?", fromTicketID).
		Update("code_ticket_id", toTicketID).Error
	if err != nil {
		return fmt.Errorf("failed to reassign code votes: %w", err)
	}
	return nil
}
