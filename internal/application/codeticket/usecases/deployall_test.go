package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesy/support-board/internal/application/codeticket/testutil"
	ccvo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	"github.com/cesy/support-board/internal/domain/releasenote"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

type deployAllDeps struct {
	tickets *testutil.MockTicketRepository
	commits *testutil.MockCommitRepository
	notes   *testutil.MockReleaseNoteRepository
	gateway *testutil.MockSupportTicketGateway
	notifier *testutil.MockNotifier
	uc      *DeployAllUseCase
}

func newDeployAllDeps(t *testing.T) deployAllDeps {
	t.Helper()
	d := deployAllDeps{
		tickets:  testutil.NewMockTicketRepository(),
		commits:  testutil.NewMockCommitRepository(),
		notes:    testutil.NewMockReleaseNoteRepository(),
		gateway:  testutil.NewMockSupportTicketGateway(),
		notifier: testutil.NewMockNotifier(),
	}
	d.uc = NewDeployAllUseCase(
		d.tickets, testutil.NewMockDetailRepository(), testutil.NewMockWatchRepository(),
		d.commits, d.notes, d.gateway,
		testutil.NewMockTransactionManager(), d.notifier, testutil.NewMockLogger(),
	)
	return d
}

func seedNote(t *testing.T, notes *testutil.MockReleaseNoteRepository, id uint, release string) {
	t.Helper()
	now := time.Now().UTC()
	n, err := releasenote.ReconstructNote(id, release, "bug fixes", false, now, now)
	require.NoError(t, err)
	notes.AddNote(n)
}

func TestDeployAll_ClosesVerifiedTicketsAndPostsNote(t *testing.T) {
	d := newDeployAllDeps(t)
	seedNote(t, d.notes, 3, "0.9.12")

	owner := uint(9)
	d.tickets.AddTicket(storedTicket(t, 1, vo.StatusVerified, &owner))
	ticketID := uint(1)
	d.commits.AddCommit(storedCommit(t, 10, ccvo.StatusVerified, 42, &ticketID))

	result, err := d.uc.Execute(context.Background(), DeployAllCommand{ReleaseNoteID: 3, Actor: adminActor(8)})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, result.TicketIDs)

	stored, err := d.tickets.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusClosed, stored.Status())
	assert.Equal(t, uint(3), *stored.ReleaseNoteID())

	deployed, err := d.commits.CountByStatus(context.Background(), ccvo.StatusDeployed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deployed)

	note, err := d.notes.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, note.IsPosted())

	// dependent support tickets resolved
	calls := d.gateway.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "resolve", calls[0].Op)
	assert.Equal(t, uint(1), calls[0].FromTicketID)
}

func TestDeployAll_RefusedWhileStagedCommitsExist(t *testing.T) {
	d := newDeployAllDeps(t)
	seedNote(t, d.notes, 3, "0.9.12")

	owner := uint(9)
	d.tickets.AddTicket(storedTicket(t, 1, vo.StatusVerified, &owner))
	ticketID := uint(1)
	d.commits.AddCommit(storedCommit(t, 10, ccvo.StatusVerified, 42, &ticketID))
	d.commits.AddCommit(storedCommit(t, 11, ccvo.StatusStaged, 43, &ticketID))

	_, err := d.uc.Execute(context.Background(), DeployAllCommand{ReleaseNoteID: 3, Actor: adminActor(8)})
	assert.True(t, apperrors.IsGuardFailedError(err))

	note, err := d.notes.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, note.IsPosted())
	assert.Zero(t, d.tickets.UpdateCalls)
}

func TestDeployAll_NoteNotFound(t *testing.T) {
	d := newDeployAllDeps(t)

	_, err := d.uc.Execute(context.Background(), DeployAllCommand{ReleaseNoteID: 99, Actor: adminActor(8)})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestDeployAll_AdminOnly(t *testing.T) {
	d := newDeployAllDeps(t)
	seedNote(t, d.notes, 3, "0.9.12")

	_, err := d.uc.Execute(context.Background(), DeployAllCommand{ReleaseNoteID: 3, Actor: volunteerActor(7)})
	assert.True(t, apperrors.IsPermissionDeniedError(err))
}
