package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTicketStatus(t *testing.T) {
	tests := []struct {
		name  string
		from  TicketStatus
		event TicketEvent
		want  TicketStatus
		ok    bool
	}{
		{"unowned take", StatusUnowned, EventTake, StatusTaken, true},
		{"unowned duplicate", StatusUnowned, EventDuplicate, StatusClosed, true},
		{"unowned commit", StatusUnowned, EventCommit, StatusCommitted, true},
		{"unowned reject", StatusUnowned, EventReject, StatusClosed, true},
		{"unowned reopen", StatusUnowned, EventReopen, StatusUnowned, true},
		{"unowned steal invalid", StatusUnowned, EventSteal, "", false},
		{"unowned stage invalid", StatusUnowned, EventStage, "", false},
		{"unowned verify invalid", StatusUnowned, EventVerify, "", false},
		{"unowned deploy invalid", StatusUnowned, EventDeploy, "", false},

		{"taken commit", StatusTaken, EventCommit, StatusCommitted, true},
		{"taken duplicate", StatusTaken, EventDuplicate, StatusClosed, true},
		{"taken reject", StatusTaken, EventReject, StatusClosed, true},
		{"taken steal", StatusTaken, EventSteal, StatusTaken, true},
		{"taken reopen", StatusTaken, EventReopen, StatusUnowned, true},
		{"taken take invalid", StatusTaken, EventTake, "", false},
		{"taken stage invalid", StatusTaken, EventStage, "", false},

		{"committed stage", StatusCommitted, EventStage, StatusStaged, true},
		{"committed duplicate", StatusCommitted, EventDuplicate, StatusClosed, true},
		{"committed reopen", StatusCommitted, EventReopen, StatusUnowned, true},
		{"committed take invalid", StatusCommitted, EventTake, "", false},
		{"committed steal invalid", StatusCommitted, EventSteal, "", false},
		{"committed verify invalid", StatusCommitted, EventVerify, "", false},

		{"staged verify", StatusStaged, EventVerify, StatusVerified, true},
		{"staged reopen", StatusStaged, EventReopen, StatusUnowned, true},
		{"staged stage invalid", StatusStaged, EventStage, "", false},
		{"staged deploy invalid", StatusStaged, EventDeploy, "", false},

		{"verified deploy", StatusVerified, EventDeploy, StatusClosed, true},
		{"verified reopen", StatusVerified, EventReopen, StatusUnowned, true},
		{"verified verify invalid", StatusVerified, EventVerify, "", false},

		{"closed reopen", StatusClosed, EventReopen, StatusUnowned, true},
		{"closed take invalid", StatusClosed, EventTake, "", false},
		{"closed deploy invalid", StatusClosed, EventDeploy, "", false},
		{"closed reject invalid", StatusClosed, EventReject, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := NextTicketStatus(tt.from, tt.event)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, next)
			}
		})
	}
}

func TestTicketStatus_IsOpen(t *testing.T) {
	assert.True(t, StatusUnowned.IsOpen())
	assert.True(t, StatusTaken.IsOpen())
	assert.True(t, StatusCommitted.IsOpen())
	assert.True(t, StatusStaged.IsOpen())
	assert.True(t, StatusVerified.IsOpen())
	assert.False(t, StatusClosed.IsOpen())
}

func TestNewTicketStatus(t *testing.T) {
	status, err := NewTicketStatus("taken")
	require.NoError(t, err)
	assert.Equal(t, StatusTaken, status)

	_, err = NewTicketStatus("bogus")
	assert.Error(t, err)
}

func TestTicketEventsFor(t *testing.T) {
	events := TicketEventsFor(StatusUnowned)
	assert.ElementsMatch(t, []TicketEvent{
		EventTake, EventDuplicate, EventCommit, EventReject, EventReopen,
	}, events)

	events = TicketEventsFor(StatusVerified)
	assert.ElementsMatch(t, []TicketEvent{EventDeploy, EventReopen}, events)
}
