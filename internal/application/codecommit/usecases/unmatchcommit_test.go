package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesy/support-board/internal/application/codeticket/testutil"
	"github.com/cesy/support-board/internal/domain/codecommit"
	ccvo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/domain/codeticket"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	"github.com/cesy/support-board/internal/domain/identity"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

func unmatchVolunteer() identity.Actor {
	return identity.Actor{
		UserID:            107,
		SupportIdentityID: 7,
		Name:              "volunteer",
		Email:             "volunteer@example.org",
		Capabilities:      identity.Capabilities{IsVolunteer: true},
	}
}

func linkedCommit(t *testing.T, id uint, status ccvo.CommitStatus, ticketID uint) *codecommit.Commit {
	t.Helper()
	now := time.Now().UTC()
	c, err := codecommit.ReconstructCommit(
		id, "committer", "fixes issue 1", status, 42, &ticketID, 1, now, now,
	)
	require.NoError(t, err)
	return c
}

func committedTicket(t *testing.T, id, ownerID uint) *codeticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := codeticket.ReconstructTicket(
		id, "Broken pagination", "", "", "", vo.StatusCommitted, &ownerID, nil, nil, 1, now, now,
	)
	require.NoError(t, err)
	return tk
}

func newUnmatchUseCase(
	commits *testutil.MockCommitRepository,
	tickets *testutil.MockTicketRepository,
	details *testutil.MockDetailRepository,
	notifier *testutil.MockNotifier,
) *UnmatchCommitUseCase {
	return NewUnmatchCommitUseCase(
		commits, tickets, details,
		testutil.NewMockTransactionManager(), notifier, testutil.NewMockLogger(),
	)
}

func TestUnmatchCommit_ReopensTicketWhenLastCommitLeaves(t *testing.T) {
	commits := testutil.NewMockCommitRepository()
	tickets := testutil.NewMockTicketRepository()
	details := testutil.NewMockDetailRepository()
	notifier := testutil.NewMockNotifier()

	tickets.AddTicket(committedTicket(t, 1, 42))
	commits.AddCommit(linkedCommit(t, 10, ccvo.StatusMatched, 1))

	uc := newUnmatchUseCase(commits, tickets, details, notifier)

	result, err := uc.Execute(context.Background(), UnmatchCommitCommand{CommitID: 10, Actor: unmatchVolunteer()})
	require.NoError(t, err)
	require.NotNil(t, result.ReopenedTicketID)
	assert.Equal(t, uint(1), *result.ReopenedTicketID)

	c, err := commits.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, ccvo.StatusUnmatched, c.Status())
	assert.Nil(t, c.CodeTicketID())

	tk, err := tickets.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusUnowned, tk.Status())
	assert.Nil(t, tk.SupportIdentityID())

	saved, err := details.ListByTicketID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Contains(t, saved[0].Content(), "commit 10 unmatched")

	calls := notifier.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "updated", calls[0].Kind)
}

func TestUnmatchCommit_KeepsTicketWhenOthersRemain(t *testing.T) {
	commits := testutil.NewMockCommitRepository()
	tickets := testutil.NewMockTicketRepository()
	notifier := testutil.NewMockNotifier()

	tickets.AddTicket(committedTicket(t, 1, 42))
	commits.AddCommit(linkedCommit(t, 10, ccvo.StatusMatched, 1))
	commits.AddCommit(linkedCommit(t, 11, ccvo.StatusMatched, 1))

	uc := newUnmatchUseCase(commits, tickets, testutil.NewMockDetailRepository(), notifier)

	result, err := uc.Execute(context.Background(), UnmatchCommitCommand{CommitID: 10, Actor: unmatchVolunteer()})
	require.NoError(t, err)
	assert.Nil(t, result.ReopenedTicketID)

	tk, err := tickets.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCommitted, tk.Status())
	assert.Empty(t, notifier.GetCalls())
}

func TestUnmatchCommit_UnlinkedCommit(t *testing.T) {
	commits := testutil.NewMockCommitRepository()
	now := time.Now().UTC()
	c, err := codecommit.ReconstructCommit(10, "committer", "stray", ccvo.StatusUnmatched, 42, nil, 1, now, now)
	require.NoError(t, err)
	commits.AddCommit(c)

	uc := newUnmatchUseCase(commits, testutil.NewMockTicketRepository(), testutil.NewMockDetailRepository(), testutil.NewMockNotifier())

	_, err = uc.Execute(context.Background(), UnmatchCommitCommand{CommitID: 10, Actor: unmatchVolunteer()})
	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

func TestUnmatchCommit_VolunteerOnly(t *testing.T) {
	uc := newUnmatchUseCase(
		testutil.NewMockCommitRepository(), testutil.NewMockTicketRepository(),
		testutil.NewMockDetailRepository(), testutil.NewMockNotifier(),
	)

	_, err := uc.Execute(context.Background(), UnmatchCommitCommand{
		CommitID: 10, Actor: identity.Actor{UserID: 3, SupportIdentityID: 1003},
	})
	assert.True(t, apperrors.IsPermissionDeniedError(err))
}
