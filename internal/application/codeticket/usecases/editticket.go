package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type EditTicketCommand struct {
	TicketID uint
	Summary  string
	URL      string
	Browser  string
	Actor    identity.Actor
}

type EditTicketUseCase struct {
	tickets  codeticket.TicketRepository
	details  codeticket.DetailRepository
	watches  codeticket.WatchRepository
	tx       TransactionManager
	notifier NotificationDispatcher
	logger   logger.Interface
}

func NewEditTicketUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *EditTicketUseCase {
	return &EditTicketUseCase{
		tickets:  tickets,
		details:  details,
		watches:  watches,
		tx:       tx,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute rewrites the descriptive fields of a ticket and records an
// official system entry. The workflow state is untouched.
func (uc *EditTicketUseCase) Execute(ctx context.Context, cmd EditTicketCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing edit ticket use case",
		"ticket_id", cmd.TicketID, "identity_id", cmd.Actor.SupportIdentityID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	var t *codeticket.Ticket
	var pending []codeticket.Event

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		t, err = uc.tickets.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}

		if err := t.Edit(cmd.Actor, cmd.Summary, cmd.URL, cmd.Browser); err != nil {
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
		uc.logger.Errorw("failed to edit ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	dispatchEvents(ctx, uc.notifier, uc.logger, t, pending)

	uc.logger.Infow("ticket edited", "ticket_id", t.ID())
	return newTransitionResult(t), nil
}
