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

type CodeWatchRepository struct {
	db     *gorm.DB
	mapper mappers.CodeTicketMapper
}

func NewCodeWatchRepository(database *gorm.DB) *CodeWatchRepository {
	return &CodeWatchRepository{
		db:     database,
		mapper: mappers.NewCodeTicketMapper(),
	}
}

func (r *CodeWatchRepository) Save(ctx context.Context, w *codeticket.Watch) error {
	model := r.mapper.WatchToModel(w)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save code watch: %w", err)
	}

	return w.SetID(model.ID)
}

func (r *CodeWatchRepository) FindByTicketAndEmail(ctx context.Context, ticketID uint, email string) (*codeticket.Watch, error) {
	var model models.CodeWatchModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("code_ticket_id = ? AND email = ?", ticketID, email).
		First(&model).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find code watch: %w", err)
	}

	return r.mapper.WatchToDomain(&model)
}

func (r *CodeWatchRepository) DeleteByTicketAndEmail(ctx context.Context, ticketID uint, email string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("code_ticket_id = ? AND email = ?", ticketID, email).
		Delete(&models.CodeWatchModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete code watch: %w", err)
	}
	return nil
}

// MailTo returns the deduplicated recipient list for a ticket. The store
// tolerates duplicate subscription rows; DISTINCT handles them here.
func (r *CodeWatchRepository) MailTo(ctx context.Context, ticketID uint, officialOnly bool) ([]string, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Model(&models.CodeWatchModel{}).
		Distinct("email").
		Where("code_ticket_id = ?", ticketID)
	if officialOnly {
		query = query.Where("official = ?", true)
	}

	var emails []string
	if err := query.Order("email ASC").Pluck("email", &emails).Error; err != nil {
		return nil, fmt.Errorf("failed to collect watch recipients: %w", err)
	}
	return emails, nil
}

func (r *CodeWatchRepository) ReassignTicket(ctx context.Context, fromTicketID, toTicketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.CodeWatchModel{}).
		Where("code_ticket_id = ?", fromTicketID).
		Update("code_ticket_id", toTicketID).Error
	if err != nil {
		return fmt.Errorf("failed to reassign code watches: %w", err)
	}
	return nil
}
