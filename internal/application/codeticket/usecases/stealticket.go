package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type StealTicketCommand struct {
	TicketID uint
	Actor    identity.Actor
}

type StealTicketUseCase struct {
	tickets  codeticket.TicketRepository
	details  codeticket.DetailRepository
	watches  codeticket.WatchRepository
	tx       TransactionManager
	notifier NotificationDispatcher
	logger   logger.Interface
}

func NewStealTicketUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *StealTicketUseCase {
	return &StealTicketUseCase{
		tickets:  tickets,
		details:  details,
		watches:  watches,
		tx:       tx,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute reassigns a taken ticket to the acting volunteer. The steal notice
// goes to the prior owner only; the generic watcher broadcast is skipped for
// this event. That asymmetry is inherited behavior and preserved on purpose.
func (uc *StealTicketUseCase) Execute(ctx context.Context, cmd StealTicketCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing steal ticket use case",
		"ticket_id", cmd.TicketID, "identity_id", cmd.Actor.SupportIdentityID)

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

		if err := t.Steal(cmd.Actor); err != nil {
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
		uc.logger.Errorw("failed to steal ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	dispatchEvents(ctx, uc.notifier, uc.logger, t, pending)

	uc.logger.Infow("ticket stolen", "ticket_id", t.ID(), "identity_id", cmd.Actor.SupportIdentityID)
	return newTransitionResult(t), nil
}

func (uc *StealTicketUseCase) validateCommand(cmd StealTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.SupportIdentityID == 0 {
		return errors.NewValidationError("acting identity is required")
	}
	return nil
}
