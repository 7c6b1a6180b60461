package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type WatchTicketCommand struct {
	TicketID uint
	Actor    identity.Actor
}

type WatchTicketResult struct {
	TicketID uint `json:"ticket_id"`
	Watching bool `json:"watching"`
}

type WatchTicketUseCase struct {
	tickets codeticket.TicketRepository
	watches codeticket.WatchRepository
	tx      TransactionManager
	logger  logger.Interface
}

func NewWatchTicketUseCase(
	tickets codeticket.TicketRepository,
	watches codeticket.WatchRepository,
	tx TransactionManager,
	logger logger.Interface,
) *WatchTicketUseCase {
	return &WatchTicketUseCase{
		tickets: tickets,
		watches: watches,
		tx:      tx,
		logger:  logger,
	}
}

// Execute subscribes the actor's email to ticket updates. Watching a
// ticket the actor already watches succeeds without a second row.
func (uc *WatchTicketUseCase) Execute(ctx context.Context, cmd WatchTicketCommand) (*WatchTicketResult, error) {
	uc.logger.Infow("executing watch ticket use case",
		"ticket_id", cmd.TicketID, "email", cmd.Actor.Email)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.Email == "" {
		return nil, errors.NewValidationError("actor email is required")
	}

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}
		if err := t.GuardWatch(cmd.Actor); err != nil {
			return err
		}
		return ensureWatching(ctx, uc.watches, t.ID(), cmd.Actor.Email, cmd.Actor.IsVolunteer())
	})
	if err != nil {
		uc.logger.Errorw("failed to watch ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket watched", "ticket_id", cmd.TicketID, "email", cmd.Actor.Email)
	return &WatchTicketResult{TicketID: cmd.TicketID, Watching: true}, nil
}

type UnwatchTicketCommand struct {
	TicketID uint
	Actor    identity.Actor
}

type UnwatchTicketUseCase struct {
	tickets codeticket.TicketRepository
	watches codeticket.WatchRepository
	tx      TransactionManager
	logger  logger.Interface
}

func NewUnwatchTicketUseCase(
	tickets codeticket.TicketRepository,
	watches codeticket.WatchRepository,
	tx TransactionManager,
	logger logger.Interface,
) *UnwatchTicketUseCase {
	return &UnwatchTicketUseCase{
		tickets: tickets,
		watches: watches,
		tx:      tx,
		logger:  logger,
	}
}

// Execute removes the actor's subscription. Unwatching a ticket the actor
// does not watch is an error, not a no-op.
func (uc *UnwatchTicketUseCase) Execute(ctx context.Context, cmd UnwatchTicketCommand) (*WatchTicketResult, error) {
	uc.logger.Infow("executing unwatch ticket use case",
		"ticket_id", cmd.TicketID, "email", cmd.Actor.Email)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.Email == "" {
		return nil, errors.NewValidationError("actor email is required")
	}

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}
		if err := t.GuardWatch(cmd.Actor); err != nil {
			return err
		}

		existing, err := uc.watches.FindByTicketAndEmail(ctx, t.ID(), cmd.Actor.Email)
		if err != nil {
			return err
		}
		if existing == nil {
			return errors.NewGuardFailedError("not currently watching this ticket")
		}
		return uc.watches.DeleteByTicketAndEmail(ctx, t.ID(), cmd.Actor.Email)
	})
	if err != nil {
		uc.logger.Errorw("failed to unwatch ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket unwatched", "ticket_id", cmd.TicketID, "email", cmd.Actor.Email)
	return &WatchTicketResult{TicketID: cmd.TicketID, Watching: false}, nil
}
