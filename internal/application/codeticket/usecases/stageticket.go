package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codecommit"
	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type StageTicketCommand struct {
	TicketID uint
	Actor    identity.Actor
}

type StageTicketUseCase struct {
	tickets  codeticket.TicketRepository
	details  codeticket.DetailRepository
	watches  codeticket.WatchRepository
	commits  codecommit.Repository
	tx       TransactionManager
	notifier NotificationDispatcher
	logger   logger.Interface
}

func NewStageTicketUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	commits codecommit.Repository,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *StageTicketUseCase {
	return &StageTicketUseCase{
		tickets:  tickets,
		details:  details,
		watches:  watches,
		commits:  commits,
		tx:       tx,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute stages a committed ticket, cascading the stage event to every
// linked commit. Ownership stays with the committer.
func (uc *StageTicketUseCase) Execute(ctx context.Context, cmd StageTicketCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing stage ticket use case", "ticket_id", cmd.TicketID)

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

		linked, err := uc.commits.ListByTicketID(ctx, t.ID())
		if err != nil {
			return err
		}

		if err := t.Stage(cmd.Actor, linked); err != nil {
			return err
		}

		for _, cc := range linked {
			if err := uc.commits.Update(ctx, cc); err != nil {
				return err
			}
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
		uc.logger.Errorw("failed to stage ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	dispatchEvents(ctx, uc.notifier, uc.logger, t, pending)

	uc.logger.Infow("ticket staged", "ticket_id", t.ID())
	return newTransitionResult(t), nil
}

func (uc *StageTicketUseCase) validateCommand(cmd StageTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.SupportIdentityID == 0 {
		return errors.NewValidationError("acting identity is required")
	}
	return nil
}
