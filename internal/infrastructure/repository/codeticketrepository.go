package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/infrastructure/persistence/mappers"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	"github.com/cesy/support-board/internal/shared/db"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

// allowedCodeTicketOrderByFields defines the whitelist of allowed ORDER BY
// fields to prevent SQL injection attacks. "votes" is handled separately via
// an aggregate join.
var allowedCodeTicketOrderByFields = map[string]bool{
	"id":         true,
	"summary":    true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

type CodeTicketRepository struct {
	db     *gorm.DB
	mapper mappers.CodeTicketMapper
}

func NewCodeTicketRepository(database *gorm.DB) *CodeTicketRepository {
	return &CodeTicketRepository{
		db:     database,
		mapper: mappers.NewCodeTicketMapper(),
	}
}

func (r *CodeTicketRepository) Save(ctx context.Context, t *codeticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save code ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// Update persists the ticket guarded by its optimistic version: the entity
// increments the version on mutation, so the row must still carry the
// previous value. A miss means a concurrent transition won.
func (r *CodeTicketRepository) Update(ctx context.Context, t *codeticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.CodeTicketModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("Summary", "Description", "URL", "Browser", "Status",
			"SupportIdentityID", "DuplicateOfID", "ReleaseNoteID", "Version", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update code ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError(
			fmt.Sprintf("code ticket %d was modified concurrently", model.ID))
	}

	return nil
}

func (r *CodeTicketRepository) GetByID(ctx context.Context, id uint) (*codeticket.Ticket, error) {
	var model models.CodeTicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("code ticket %d not found", id))
		}
		return nil, fmt.Errorf("failed to find code ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *CodeTicketRepository) List(ctx context.Context, filter codeticket.TicketFilter) ([]*codeticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.CodeTicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	} else if filter.OpenOnly {
		query = query.Where("status <> ?", "closed")
	}
	if filter.OwnerIdentityID != nil {
		query = query.Where("support_identity_id = ?", *filter.OwnerIdentityID)
	}
	if filter.ReleaseNoteID != nil {
		query = query.Where("release_note_id = ?", *filter.ReleaseNoteID)
	}
	if filter.WatcherEmail != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM code_watches w WHERE w.code_ticket_id = code_tickets.id AND w.email = ?)",
			filter.WatcherEmail)
	}
	if filter.CommenterIdentityID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM code_details d WHERE d.code_ticket_id = code_tickets.id AND d.support_identity_id = ? AND d.system_log = ?)",
			*filter.CommenterIdentityID, false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count code tickets: %w", err)
	}

	query = r.applyOrder(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.CodeTicketModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list code tickets: %w", err)
	}

	tickets := make([]*codeticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}

	return tickets, total, nil
}

func (r *CodeTicketRepository) applyOrder(query *gorm.DB, filter codeticket.TicketFilter) *gorm.DB {
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	if filter.SortBy == "votes" {
		return query.
			Select("code_tickets.*").
			Joins("LEFT JOIN code_votes ON code_votes.code_ticket_id = code_tickets.id").
			Group("code_tickets.id").
			Order("COALESCE(SUM(code_votes.weight), 0) " + order)
	}

	field := filter.SortBy
	if !allowedCodeTicketOrderByFields[field] {
		field = "id"
	}
	return query.Order(fmt.Sprintf("%s %s", field, order))
}
