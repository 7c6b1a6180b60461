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

type UnmatchCommitCommand struct {
	CommitID uint
	Actor    identity.Actor
}

type UnmatchCommitResult struct {
	CommitID         uint  `json:"commit_id"`
	ReopenedTicketID *uint `json:"reopened_ticket_id,omitempty"`
}

type UnmatchCommitUseCase struct {
	commits  codecommit.Repository
	tickets  codeticket.TicketRepository
	details  codeticket.DetailRepository
	tx       TransactionManager
	notifier NotificationDispatcher
	logger   logger.Interface
}

func NewUnmatchCommitUseCase(
	commits codecommit.Repository,
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *UnmatchCommitUseCase {
	return &UnmatchCommitUseCase{
		commits:  commits,
		tickets:  tickets,
		details:  details,
		tx:       tx,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute detaches a commit from its ticket. When the commit was the only
// one backing a committed ticket, the ticket is reopened in the same
// transaction so it does not sit in committed with nothing behind it.
func (uc *UnmatchCommitUseCase) Execute(ctx context.Context, cmd UnmatchCommitCommand) (*UnmatchCommitResult, error) {
	uc.logger.Infow("executing unmatch commit use case",
		"commit_id", cmd.CommitID, "identity_id", cmd.Actor.SupportIdentityID)

	if cmd.CommitID == 0 {
		return nil, errors.NewValidationError("commit ID is required")
	}
	if !cmd.Actor.IsVolunteer() {
		return nil, errors.NewPermissionDeniedError("unmatch requires support volunteer capability")
	}

	var reopened *codeticket.Ticket
	result := &UnmatchCommitResult{CommitID: cmd.CommitID}

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := uc.commits.GetByID(ctx, cmd.CommitID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("commit %d not found", cmd.CommitID))
		}

		ticketID := c.CodeTicketID()

		if ticketID != nil {
			t, err := uc.tickets.GetByID(ctx, *ticketID)
			if err != nil {
				return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", *ticketID))
			}

			linked, err := uc.commits.ListByTicketID(ctx, *ticketID)
			if err != nil {
				return err
			}

			if t.Status().IsCommitted() && len(linked) == 1 {
				reason := fmt.Sprintf("commit %d unmatched", c.ID())
				if err := t.Reopen(cmd.Actor, reason); err != nil {
					return err
				}
				if err := uc.tickets.Update(ctx, t); err != nil {
					return err
				}
				for _, d := range t.PullPendingDetails() {
					if err := uc.details.Save(ctx, d); err != nil {
						return err
					}
				}
				reopened = t
				id := t.ID()
				result.ReopenedTicketID = &id
			}
		}

		if err := c.Unmatch(); err != nil {
			return err
		}
		return uc.commits.Update(ctx, c)
	})
	if err != nil {
		uc.logger.Errorw("failed to unmatch commit", "commit_id", cmd.CommitID, "error", err)
		return nil, err
	}

	if reopened != nil {
		for _, ev := range reopened.PullEvents() {
			if _, ok := ev.(codeticket.UpdateBroadcastEvent); !ok {
				continue
			}
			if err := uc.notifier.TicketUpdated(ctx, reopened, false); err != nil {
				uc.logger.Warnw("failed to dispatch notification",
					"ticket_id", reopened.ID(), "event", ev.EventName(), "error", err)
			}
		}
	}

	uc.logger.Infow("commit unmatched",
		"commit_id", cmd.CommitID, "reopened_ticket", result.ReopenedTicketID != nil)
	return result, nil
}
