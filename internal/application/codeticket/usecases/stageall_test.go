package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesy/support-board/internal/application/codeticket/testutil"
	ccvo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

func newStageAllUseCase(
	tickets *testutil.MockTicketRepository,
	commits *testutil.MockCommitRepository,
	notifier *testutil.MockNotifier,
) *StageAllUseCase {
	return NewStageAllUseCase(
		tickets, testutil.NewMockDetailRepository(), testutil.NewMockWatchRepository(),
		commits, testutil.NewMockTransactionManager(), notifier, testutil.NewMockLogger(),
	)
}

func TestStageAll_StagesEveryCommittedTicket(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	commits := testutil.NewMockCommitRepository()
	notifier := testutil.NewMockNotifier()

	ownerA, ownerB := uint(42), uint(43)
	tickets.AddTicket(storedTicket(t, 1, vo.StatusCommitted, &ownerA))
	tickets.AddTicket(storedTicket(t, 2, vo.StatusCommitted, &ownerB))
	ticketA, ticketB := uint(1), uint(2)
	commits.AddCommit(storedCommit(t, 10, ccvo.StatusMatched, 42, &ticketA))
	commits.AddCommit(storedCommit(t, 11, ccvo.StatusMatched, 42, &ticketA))
	commits.AddCommit(storedCommit(t, 12, ccvo.StatusMatched, 43, &ticketB))

	uc := newStageAllUseCase(tickets, commits, notifier)

	result, err := uc.Execute(context.Background(), StageAllCommand{Actor: adminActor(9)})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, result.TicketIDs)

	for _, id := range []uint{1, 2} {
		stored, err := tickets.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusStaged, stored.Status())
	}
	remaining, err := commits.CountByStatus(context.Background(), ccvo.StatusMatched)
	require.NoError(t, err)
	assert.Zero(t, remaining)
	staged, err := commits.CountByStatus(context.Background(), ccvo.StatusStaged)
	require.NoError(t, err)
	assert.Equal(t, int64(3), staged)

	assert.Len(t, notifier.GetCalls(), 2)
}

func TestStageAll_RefusedWhileUnmatchedCommitsExist(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	commits := testutil.NewMockCommitRepository()
	notifier := testutil.NewMockNotifier()

	owner := uint(42)
	tickets.AddTicket(storedTicket(t, 1, vo.StatusCommitted, &owner))
	ticketID := uint(1)
	commits.AddCommit(storedCommit(t, 10, ccvo.StatusMatched, 42, &ticketID))
	commits.AddCommit(storedCommit(t, 11, ccvo.StatusUnmatched, 43, nil))

	uc := newStageAllUseCase(tickets, commits, notifier)

	_, err := uc.Execute(context.Background(), StageAllCommand{Actor: adminActor(9)})
	assert.True(t, apperrors.IsGuardFailedError(err))

	// nothing moved
	stored, err := tickets.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCommitted, stored.Status())
	assert.Zero(t, tickets.UpdateCalls)
	assert.Empty(t, notifier.GetCalls())
}

func TestStageAll_AdminOnly(t *testing.T) {
	uc := newStageAllUseCase(
		testutil.NewMockTicketRepository(), testutil.NewMockCommitRepository(), testutil.NewMockNotifier(),
	)

	_, err := uc.Execute(context.Background(), StageAllCommand{Actor: volunteerActor(7)})
	assert.True(t, apperrors.IsPermissionDeniedError(err))
}

func TestStageAll_NothingToStage(t *testing.T) {
	uc := newStageAllUseCase(
		testutil.NewMockTicketRepository(), testutil.NewMockCommitRepository(), testutil.NewMockNotifier(),
	)

	result, err := uc.Execute(context.Background(), StageAllCommand{Actor: adminActor(9)})
	require.NoError(t, err)
	assert.Empty(t, result.TicketIDs)
}
