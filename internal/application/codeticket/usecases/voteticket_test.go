package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesy/support-board/internal/application/codeticket/testutil"
	"github.com/cesy/support-board/internal/domain/codeticket"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

func newVoteTicketUseCase(tickets *testutil.MockTicketRepository, votes *testutil.MockVoteRepository) *VoteTicketUseCase {
	return NewVoteTicketUseCase(tickets, votes, testutil.NewMockTransactionManager(), testutil.NewMockLogger())
}

func TestVoteTicket_Success(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	votes := testutil.NewMockVoteRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))
	seedVote(t, votes, 1, 50)

	uc := newVoteTicketUseCase(tickets, votes)

	result, err := uc.Execute(context.Background(), VoteTicketCommand{TicketID: 1, Actor: userActor(3)})
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.TicketID)
	assert.Equal(t, 2, result.VoteCount)
}

func TestVoteTicket_AlreadyVoted(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	votes := testutil.NewMockVoteRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))
	actor := userActor(3)
	seedVote(t, votes, 1, actor.UserID)

	uc := newVoteTicketUseCase(tickets, votes)

	_, err := uc.Execute(context.Background(), VoteTicketCommand{TicketID: 1, Actor: actor})
	assert.True(t, apperrors.IsGuardFailedError(err))

	sum, err := votes.SumByTicketID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sum)
}

func TestVoteTicket_RequiresLogin(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))

	uc := newVoteTicketUseCase(tickets, testutil.NewMockVoteRepository())

	_, err := uc.Execute(context.Background(), VoteTicketCommand{TicketID: 1})
	assert.True(t, apperrors.IsPermissionDeniedError(err))
}

func TestVoteTicket_DuplicateIsFrozen(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	now := time.Now().UTC()
	dupOf := uint(2)
	dup, err := codeticket.ReconstructTicket(
		1, "dup", "", "", "", vo.StatusClosed, nil, &dupOf, nil, 1, now, now,
	)
	require.NoError(t, err)
	tickets.AddTicket(dup)

	uc := newVoteTicketUseCase(tickets, testutil.NewMockVoteRepository())

	_, err = uc.Execute(context.Background(), VoteTicketCommand{TicketID: 1, Actor: userActor(3)})
	assert.True(t, apperrors.IsGuardFailedError(err))
}
