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

func TestWatchTicket_Success(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	watches := testutil.NewMockWatchRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))

	uc := NewWatchTicketUseCase(tickets, watches, testutil.NewMockTransactionManager(), testutil.NewMockLogger())
	actor := userActor(3)

	result, err := uc.Execute(context.Background(), WatchTicketCommand{TicketID: 1, Actor: actor})
	require.NoError(t, err)
	assert.True(t, result.Watching)

	w, err := watches.FindByTicketAndEmail(context.Background(), 1, actor.Email)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.False(t, w.IsOfficial())
}

func TestWatchTicket_Idempotent(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	watches := testutil.NewMockWatchRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))

	uc := NewWatchTicketUseCase(tickets, watches, testutil.NewMockTransactionManager(), testutil.NewMockLogger())
	actor := userActor(3)

	_, err := uc.Execute(context.Background(), WatchTicketCommand{TicketID: 1, Actor: actor})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), WatchTicketCommand{TicketID: 1, Actor: actor})
	require.NoError(t, err)

	assert.Equal(t, 1, watches.WatchCount(1))
}

func TestWatchTicket_VolunteerSubscriptionIsOfficial(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	watches := testutil.NewMockWatchRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))

	uc := NewWatchTicketUseCase(tickets, watches, testutil.NewMockTransactionManager(), testutil.NewMockLogger())
	actor := volunteerActor(7)

	_, err := uc.Execute(context.Background(), WatchTicketCommand{TicketID: 1, Actor: actor})
	require.NoError(t, err)

	w, err := watches.FindByTicketAndEmail(context.Background(), 1, actor.Email)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.True(t, w.IsOfficial())
}

func TestUnwatchTicket_Success(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	watches := testutil.NewMockWatchRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))
	actor := userActor(3)
	require.NoError(t, watches.AddWatch(1, actor.Email, false))

	uc := NewUnwatchTicketUseCase(tickets, watches, testutil.NewMockTransactionManager(), testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), UnwatchTicketCommand{TicketID: 1, Actor: actor})
	require.NoError(t, err)
	assert.False(t, result.Watching)
	assert.Equal(t, 0, watches.WatchCount(1))
}

func TestUnwatchTicket_NotWatching(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	tickets.AddTicket(storedTicket(t, 1, vo.StatusUnowned, nil))

	uc := NewUnwatchTicketUseCase(tickets, testutil.NewMockWatchRepository(), testutil.NewMockTransactionManager(), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), UnwatchTicketCommand{TicketID: 1, Actor: userActor(3)})
	assert.True(t, apperrors.IsGuardFailedError(err))
}
