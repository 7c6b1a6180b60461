package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type DuplicateTicketCommand struct {
	TicketID         uint
	OriginalTicketID uint
	Actor            identity.Actor
}

type DuplicateTicketUseCase struct {
	tickets        codeticket.TicketRepository
	details        codeticket.DetailRepository
	watches        codeticket.WatchRepository
	votes          codeticket.VoteRepository
	supportTickets codeticket.SupportTicketGateway
	tx             TransactionManager
	notifier       NotificationDispatcher
	logger         logger.Interface
}

func NewDuplicateTicketUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	votes codeticket.VoteRepository,
	supportTickets codeticket.SupportTicketGateway,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *DuplicateTicketUseCase {
	return &DuplicateTicketUseCase{
		tickets:        tickets,
		details:        details,
		watches:        watches,
		votes:          votes,
		supportTickets: supportTickets,
		tx:             tx,
		notifier:       notifier,
		logger:         logger,
	}
}

// Execute closes a ticket as a duplicate and redirects its dependents to the
// original: support tickets, watch subscriptions and votes move in bulk.
// Duplicate rows are tolerated; recipients and vote counts deduplicate at
// read time.
func (uc *DuplicateTicketUseCase) Execute(ctx context.Context, cmd DuplicateTicketCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing duplicate ticket use case",
		"ticket_id", cmd.TicketID, "original_id", cmd.OriginalTicketID)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	var t *codeticket.Ticket
	var pending []codeticket.Event

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		t, err = uc.tickets.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}

		original, err := uc.tickets.GetByID(ctx, cmd.OriginalTicketID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("original ticket %d not found", cmd.OriginalTicketID))
		}

		if err := t.MarkDuplicateOf(cmd.Actor, original); err != nil {
			return err
		}

		if err := uc.supportTickets.ReassignAll(ctx, t.ID(), original.ID()); err != nil {
			return err
		}
		if err := uc.watches.ReassignTicket(ctx, t.ID(), original.ID()); err != nil {
			return err
		}
		if err := uc.votes.ReassignTicket(ctx, t.ID(), original.ID()); err != nil {
			return err
		}

		if err := uc.tickets.Update(ctx, t); err != nil {
			return err
		}
		if err := saveDetails(ctx, uc.details, t); err != nil {
			return err
		}

		pending, err = applyWatchEvents(ctx, uc.watches, t, t.PullEvents())
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to duplicate ticket",
			"ticket_id", cmd.TicketID, "original_id", cmd.OriginalTicketID, "error", err)
		return nil, err
	}

	dispatchEvents(ctx, uc.notifier, uc.logger, t, pending)

	uc.logger.Infow("ticket closed as duplicate",
		"ticket_id", t.ID(), "original_id", cmd.OriginalTicketID)
	return newTransitionResult(t), nil
}

func (uc *DuplicateTicketUseCase) validateCommand(cmd DuplicateTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.OriginalTicketID == 0 {
		return errors.NewValidationError("original ticket ID is required")
	}
	if cmd.Actor.SupportIdentityID == 0 {
		return errors.NewValidationError("acting identity is required")
	}
	return nil
}
