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

type CommitTicketCommand struct {
	TicketID     uint
	CodeCommitID uint
	Actor        identity.Actor
}

type CommitTicketUseCase struct {
	tickets  codeticket.TicketRepository
	details  codeticket.DetailRepository
	watches  codeticket.WatchRepository
	commits  codecommit.Repository
	tx       TransactionManager
	notifier NotificationDispatcher
	logger   logger.Interface
}

func NewCommitTicketUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	commits codecommit.Repository,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *CommitTicketUseCase {
	return &CommitTicketUseCase{
		tickets:  tickets,
		details:  details,
		watches:  watches,
		commits:  commits,
		tx:       tx,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute links an unmatched commit to the ticket. Ownership moves to the
// commit's identity and the commit becomes matched.
func (uc *CommitTicketUseCase) Execute(ctx context.Context, cmd CommitTicketCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing commit ticket use case",
		"ticket_id", cmd.TicketID, "commit_id", cmd.CodeCommitID)

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

		cc, err := uc.commits.GetByID(ctx, cmd.CodeCommitID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("code commit %d not found", cmd.CodeCommitID))
		}

		if err := t.AttachCommit(cmd.Actor, cc); err != nil {
			return err
		}

		if err := uc.commits.Update(ctx, cc); err != nil {
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
		uc.logger.Errorw("failed to commit ticket",
			"ticket_id", cmd.TicketID, "commit_id", cmd.CodeCommitID, "error", err)
		return nil, err
	}

	dispatchEvents(ctx, uc.notifier, uc.logger, t, pending)

	uc.logger.Infow("commit linked to ticket",
		"ticket_id", t.ID(), "commit_id", cmd.CodeCommitID)
	return newTransitionResult(t), nil
}

func (uc *CommitTicketUseCase) validateCommand(cmd CommitTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.CodeCommitID == 0 {
		return errors.NewValidationError("code commit ID is required")
	}
	if cmd.Actor.SupportIdentityID == 0 {
		return errors.NewValidationError("acting identity is required")
	}
	return nil
}
