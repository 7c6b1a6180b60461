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

type CodeDetailRepository struct {
	db     *gorm.DB
	mapper mappers.CodeTicketMapper
}

func NewCodeDetailRepository(database *gorm.DB) *CodeDetailRepository {
	return &CodeDetailRepository{
		db:     database,
		mapper: mappers.NewCodeTicketMapper(),
	}
}

func (r *CodeDetailRepository) Save(ctx context.Context, d *codeticket.Detail) error {
	model := r.mapper.DetailToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save code detail: %w", err)
	}

	return d.SetID(model.ID)
}

func (r *CodeDetailRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*codeticket.Detail, error) {
	var rows []models.CodeDetailModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("code_ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list code details: %w", err)
	}

	details := make([]*codeticket.Detail, 0, len(rows))
	for i := range rows {
		d, err := r.mapper.DetailToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}
