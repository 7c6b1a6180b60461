package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codecommit"
	ccvo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/domain/releasenote"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type DeployAllCommand struct {
	ReleaseNoteID uint
	Actor         identity.Actor
}

type DeployAllUseCase struct {
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

func NewDeployAllUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	commits codecommit.Repository,
	releaseNotes releasenote.Repository,
	supportTickets codeticket.SupportTicketGateway,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *DeployAllUseCase {
	return &DeployAllUseCase{
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

// Execute deploys every verified ticket under the given release note in
// one transaction, then marks the note as posted. The run is refused while
// any commit is still staged: everything on staging must be verified or
// unmatched before a deploy roll. Admin only.
func (uc *DeployAllUseCase) Execute(ctx context.Context, cmd DeployAllCommand) (*BatchResult, error) {
	uc.logger.Infow("executing deploy all use case",
		"release_note_id", cmd.ReleaseNoteID, "identity_id", cmd.Actor.SupportIdentityID)

	if !cmd.Actor.IsAdmin() {
		return nil, errors.NewPermissionDeniedError("deploying all requires support admin capability")
	}
	if cmd.ReleaseNoteID == 0 {
		return nil, errors.NewValidationError("release note ID is required")
	}

	var deployed []*codeticket.Ticket
	var pendingByTicket map[uint][]codeticket.Event

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		note, err := uc.releaseNotes.GetByID(ctx, cmd.ReleaseNoteID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("release note %d not found", cmd.ReleaseNoteID))
		}

		stagedCount, err := uc.commits.CountByStatus(ctx, ccvo.StatusStaged)
		if err != nil {
			return err
		}
		if stagedCount > 0 {
			return errors.NewGuardFailedError(
				fmt.Sprintf("%d staged commits must be verified first", stagedCount))
		}

		verified, err := uc.commits.ListByStatus(ctx, ccvo.StatusVerified)
		if err != nil {
			return err
		}

		pendingByTicket = make(map[uint][]codeticket.Event)
		for _, ticketID := range distinctTicketIDs(verified) {
			t, err := uc.tickets.GetByID(ctx, ticketID)
			if err != nil {
				return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID))
			}

			linked, err := uc.commits.ListByTicketID(ctx, ticketID)
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

			remaining, err := applyWatchEvents(ctx, uc.watches, t, t.PullEvents())
			if err != nil {
				return err
			}
			pendingByTicket[ticketID] = remaining
			deployed = append(deployed, t)
		}

		note.MarkPosted()
		return uc.releaseNotes.Update(ctx, note)
	})
	if err != nil {
		uc.logger.Errorw("failed to deploy all", "release_note_id", cmd.ReleaseNoteID, "error", err)
		return nil, err
	}

	result := &BatchResult{TicketIDs: make([]uint, 0, len(deployed))}
	for _, t := range deployed {
		dispatchEvents(ctx, uc.notifier, uc.logger, t, pendingByTicket[t.ID()])
		result.TicketIDs = append(result.TicketIDs, t.ID())
	}

	uc.logger.Infow("deploy all complete",
		"release_note_id", cmd.ReleaseNoteID, "ticket_count", len(result.TicketIDs))
	return result, nil
}
