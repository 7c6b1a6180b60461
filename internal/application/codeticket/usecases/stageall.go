package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codecommit"
	ccvo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type StageAllCommand struct {
	Actor identity.Actor
}

// BatchResult reports a roll-to-stage or roll-to-deploy run.
type BatchResult struct {
	TicketIDs []uint `json:"ticket_ids"`
}

type StageAllUseCase struct {
	tickets  codeticket.TicketRepository
	details  codeticket.DetailRepository
	watches  codeticket.WatchRepository
	commits  codecommit.Repository
	tx       TransactionManager
	notifier NotificationDispatcher
	logger   logger.Interface
}

func NewStageAllUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	commits codecommit.Repository,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *StageAllUseCase {
	return &StageAllUseCase{
		tickets:  tickets,
		details:  details,
		watches:  watches,
		commits:  commits,
		tx:       tx,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute stages every committed ticket in one transaction. The run is
// refused while any commit is still unmatched: an operator must link or
// discard strays before a stage roll. Admin only.
func (uc *StageAllUseCase) Execute(ctx context.Context, cmd StageAllCommand) (*BatchResult, error) {
	uc.logger.Infow("executing stage all use case", "identity_id", cmd.Actor.SupportIdentityID)

	if !cmd.Actor.IsAdmin() {
		return nil, errors.NewPermissionDeniedError("staging all requires support admin capability")
	}

	var staged []*codeticket.Ticket
	var pendingByTicket map[uint][]codeticket.Event

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		unmatched, err := uc.commits.CountByStatus(ctx, ccvo.StatusUnmatched)
		if err != nil {
			return err
		}
		if unmatched > 0 {
			return errors.NewGuardFailedError(
				fmt.Sprintf("%d unmatched commits must be linked first", unmatched))
		}

		matched, err := uc.commits.ListByStatus(ctx, ccvo.StatusMatched)
		if err != nil {
			return err
		}

		pendingByTicket = make(map[uint][]codeticket.Event)
		for _, ticketID := range distinctTicketIDs(matched) {
			t, err := uc.tickets.GetByID(ctx, ticketID)
			if err != nil {
				return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID))
			}

			linked, err := uc.commits.ListByTicketID(ctx, ticketID)
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

			remaining, err := applyWatchEvents(ctx, uc.watches, t, t.PullEvents())
			if err != nil {
				return err
			}
			pendingByTicket[ticketID] = remaining
			staged = append(staged, t)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to stage all", "error", err)
		return nil, err
	}

	result := &BatchResult{TicketIDs: make([]uint, 0, len(staged))}
	for _, t := range staged {
		dispatchEvents(ctx, uc.notifier, uc.logger, t, pendingByTicket[t.ID()])
		result.TicketIDs = append(result.TicketIDs, t.ID())
	}

	uc.logger.Infow("stage all complete", "ticket_count", len(result.TicketIDs))
	return result, nil
}

// distinctTicketIDs collects the referenced ticket IDs in first-seen order.
func distinctTicketIDs(commits []*codecommit.Commit) []uint {
	seen := make(map[uint]bool)
	var out []uint
	for _, cc := range commits {
		id := cc.CodeTicketID()
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		out = append(out, *id)
	}
	return out
}
