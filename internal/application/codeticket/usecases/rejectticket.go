package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type RejectTicketCommand struct {
	TicketID uint
	Reason   string
	Actor    identity.Actor
}

type RejectTicketUseCase struct {
	tickets  codeticket.TicketRepository
	details  codeticket.DetailRepository
	watches  codeticket.WatchRepository
	tx       TransactionManager
	notifier NotificationDispatcher
	logger   logger.Interface
}

func NewRejectTicketUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *RejectTicketUseCase {
	return &RejectTicketUseCase{
		tickets:  tickets,
		details:  details,
		watches:  watches,
		tx:       tx,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *RejectTicketUseCase) Execute(ctx context.Context, cmd RejectTicketCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing reject ticket use case",
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

		if err := t.Reject(cmd.Actor, cmd.Reason); err != nil {
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
		uc.logger.Errorw("failed to reject ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	dispatchEvents(ctx, uc.notifier, uc.logger, t, pending)

	uc.logger.Infow("ticket rejected", "ticket_id", t.ID())
	return newTransitionResult(t), nil
}

func (uc *RejectTicketUseCase) validateCommand(cmd RejectTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.SupportIdentityID == 0 {
		return errors.NewValidationError("acting identity is required")
	}
	return nil
}
