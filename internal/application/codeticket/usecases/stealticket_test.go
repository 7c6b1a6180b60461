package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesy/support-board/internal/application/codeticket/testutil"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

func TestStealTicket_NotifiesPriorOwnerOnly(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	watches := testutil.NewMockWatchRepository()
	notifier := testutil.NewMockNotifier()
	owner := uint(7)
	tickets.AddTicket(storedTicket(t, 1, vo.StatusTaken, &owner))
	require.NoError(t, watches.AddWatch(1, "watcher@example.org", false))

	uc := NewStealTicketUseCase(
		tickets, testutil.NewMockDetailRepository(), watches,
		testutil.NewMockTransactionManager(), notifier, testutil.NewMockLogger(),
	)
	stealer := volunteerActor(9)
	stealer.Name = "stealer"

	result, err := uc.Execute(context.Background(), StealTicketCommand{TicketID: 1, Actor: stealer})
	require.NoError(t, err)
	assert.Equal(t, "taken", result.Status)

	stored, err := tickets.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(9), *stored.SupportIdentityID())

	// the prior owner gets the notice; current watchers get nothing
	calls := notifier.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "stolen", calls[0].Kind)
	assert.Equal(t, uint(7), calls[0].PriorIdentityID)
	assert.Equal(t, "stealer", calls[0].StealerName)
}

func TestStealTicket_OwnTicket(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	owner := uint(7)
	tickets.AddTicket(storedTicket(t, 1, vo.StatusTaken, &owner))

	uc := NewStealTicketUseCase(
		tickets, testutil.NewMockDetailRepository(), testutil.NewMockWatchRepository(),
		testutil.NewMockTransactionManager(), testutil.NewMockNotifier(), testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), StealTicketCommand{TicketID: 1, Actor: volunteerActor(7)})
	assert.True(t, apperrors.IsGuardFailedError(err))
}

func TestStealTicket_InvalidFromUnowned(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))

	uc := NewStealTicketUseCase(
		tickets, testutil.NewMockDetailRepository(), testutil.NewMockWatchRepository(),
		testutil.NewMockTransactionManager(), testutil.NewMockNotifier(), testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), StealTicketCommand{TicketID: 1, Actor: volunteerActor(9)})
	assert.True(t, apperrors.IsInvalidTransitionError(err))
}
