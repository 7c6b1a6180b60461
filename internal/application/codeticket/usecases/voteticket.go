package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type VoteTicketCommand struct {
	TicketID uint
	Weight   int
	Actor    identity.Actor
}

type VoteTicketResult struct {
	TicketID  uint `json:"ticket_id"`
	VoteCount int  `json:"vote_count"`
}

type VoteTicketUseCase struct {
	tickets codeticket.TicketRepository
	votes   codeticket.VoteRepository
	tx      TransactionManager
	logger  logger.Interface
}

func NewVoteTicketUseCase(
	tickets codeticket.TicketRepository,
	votes codeticket.VoteRepository,
	tx TransactionManager,
	logger logger.Interface,
) *VoteTicketUseCase {
	return &VoteTicketUseCase{
		tickets: tickets,
		votes:   votes,
		tx:      tx,
		logger:  logger,
	}
}

// Execute records a vote: logged-in users only, at most once per ticket,
// never on duplicates. The read-then-insert runs inside the transaction so
// two concurrent votes by the same user cannot both pass the guard.
func (uc *VoteTicketUseCase) Execute(ctx context.Context, cmd VoteTicketCommand) (*VoteTicketResult, error) {
	uc.logger.Infow("executing vote ticket use case",
		"ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	var count int

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}

		existing, err := uc.votes.FindByTicketAndUser(ctx, t.ID(), cmd.Actor.UserID)
		if err != nil {
			return err
		}

		if err := t.GuardVote(cmd.Actor, existing != nil); err != nil {
			return err
		}

		v, err := codeticket.NewVote(t.ID(), cmd.Actor.UserID, cmd.Weight)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.votes.Save(ctx, v); err != nil {
			return err
		}

		count, err = uc.votes.SumByTicketID(ctx, t.ID())
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to vote for ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("vote recorded", "ticket_id", cmd.TicketID, "vote_count", count)
	return &VoteTicketResult{TicketID: cmd.TicketID, VoteCount: count}, nil
}
