package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codecommit"
	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/domain/releasenote"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type DeployTicketCommand struct {
	TicketID      uint
	ReleaseNoteID uint
	Actor         identity.Actor
}

type DeployTicketUseCase struct {
	tickets        codeticket.TicketRepository
	details        codeticket.DetailRepository
	watches        codeticket.WatchRepository
	commits        codecommit.Repository
	releaseNotes   releasenote.Repository
	supportTickets codeticket.SupportTicketGateway
	tx             TransactionManager
	notifier       NotificationDispatcher
	logger         logger.Interface
}

func NewDeployTicketUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	commits codecommit.Repository,
	releaseNotes releasenote.Repository,
	supportTickets codeticket.SupportTicketGateway,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *DeployTicketUseCase {
	return &DeployTicketUseCase{
		tickets:        tickets,
		details:        details,
		watches:        watches,
		commits:        commits,
		releaseNotes:   releaseNotes,
		supportTickets: supportTickets,
		tx:             tx,
		notifier:       notifier,
		logger:         logger,
	}
}

// Execute closes a verified ticket under a release: the deploy event
// cascades to linked commits and dependent support tickets are resolved.
func (uc *DeployTicketUseCase) Execute(ctx context.Context, cmd DeployTicketCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing deploy ticket use case",
		"ticket_id", cmd.TicketID, "release_note_id", cmd.ReleaseNoteID)

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

		note, err := uc.releaseNotes.GetByID(ctx, cmd.ReleaseNoteID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("release note %d not found", cmd.ReleaseNoteID))
		}

		linked, err := uc.commits.ListByTicketID(ctx, t.ID())
		if err != nil {
			return err
		}

		if err := t.Deploy(cmd.Actor, note, linked); err != nil {
			return err
		}

		for _, cc := range linked {
			if err := uc.commits.Update(ctx, cc); err != nil {
				return err
			}
		}
		if err := uc.supportTickets.ResolveAll(ctx, t.ID()); err != nil {
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
		uc.logger.Errorw("failed to deploy ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	dispatchEvents(ctx, uc.notifier, uc.logger, t, pending)

	uc.logger.Infow("ticket deployed", "ticket_id", t.ID(), "release_note_id", cmd.ReleaseNoteID)
	return newTransitionResult(t), nil
}

func (uc *DeployTicketUseCase) validateCommand(cmd DeployTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.ReleaseNoteID == 0 {
		return errors.NewValidationError("release note ID is required")
	}
	if cmd.Actor.SupportIdentityID == 0 {
		return errors.NewValidationError("acting identity is required")
	}
	return nil
}
