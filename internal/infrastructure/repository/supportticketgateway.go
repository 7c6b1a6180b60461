package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	"github.com/cesy/support-board/internal/shared/db"
)

// SupportTicketGateway talks to the user-facing support ticket table owned
// by the support board. The workflow core only reassigns and resolves.
type SupportTicketGateway struct {
	db *gorm.DB
}

func NewSupportTicketGateway(database *gorm.DB) *SupportTicketGateway {
	return &SupportTicketGateway{db: database}
}

// ReassignAll moves every dependent support ticket from one code ticket to
// another. Used when a code ticket is closed as a duplicate.
func (g *SupportTicketGateway) ReassignAll(ctx context.Context, fromTicketID, toTicketID uint) error {
	tx := db.GetTxFromContext(ctx, g.db)

	err := tx.
		Model(&models.SupportTicketModel{}).
		Where("code_ticket_id = ?", fromTicketID).
		Update("code_ticket_id", toTicketID).Error
	if err != nil {
		return fmt.Errorf("failed to reassign support tickets: %w", err)
	}
	return nil
}

// ResolveAll marks every dependent support ticket resolved. Used when a code
// ticket is deployed.
func (g *SupportTicketGateway) ResolveAll(ctx context.Context, codeTicketID uint) error {
	tx := db.GetTxFromContext(ctx, g.db)

	err := tx.
		Model(&models.SupportTicketModel{}).
		Where("code_ticket_id = ?", codeTicketID).
		Update("resolved", true).Error
	if err != nil {
		return fmt.Errorf("failed to resolve support tickets: %w", err)
	}
	return nil
}
