package valueobjects

import "fmt"

// TicketStatus is the workflow state of a code ticket.
type TicketStatus string

const (
	StatusUnowned   TicketStatus = "unowned"
	StatusTaken     TicketStatus = "taken"
	StatusCommitted TicketStatus = "committed"
	StatusStaged    TicketStatus = "staged"
	StatusVerified  TicketStatus = "verified"
	StatusClosed    TicketStatus = "closed"
)

// TicketEvent is a workflow event that may move a ticket between states.
type TicketEvent string

const (
	EventTake      TicketEvent = "take"
	EventDuplicate TicketEvent = "duplicate"
	EventCommit    TicketEvent = "commit"
	EventReject    TicketEvent = "reject"
	EventSteal     TicketEvent = "steal"
	EventReopen    TicketEvent = "reopen"
	EventStage     TicketEvent = "stage"
	EventVerify    TicketEvent = "verify"
	EventDeploy    TicketEvent = "deploy"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusUnowned:   true,
	StatusTaken:     true,
	StatusCommitted: true,
	StatusStaged:    true,
	StatusVerified:  true,
	StatusClosed:    true,
}

// ticketTransitions is the single source of truth for the ticket state
// machine: state x event -> next state. Guards and effects live on the
// entity; anything absent here is an invalid transition. Reopen is valid
// from every state and always returns the ticket to unowned.
var ticketTransitions = map[TicketStatus]map[TicketEvent]TicketStatus{
	StatusUnowned: {
		EventTake:      StatusTaken,
		EventDuplicate: StatusClosed,
		EventCommit:    StatusCommitted,
		EventReject:    StatusClosed,
		EventReopen:    StatusUnowned,
	},
	StatusTaken: {
		EventCommit:    StatusCommitted,
		EventDuplicate: StatusClosed,
		EventReject:    StatusClosed,
		EventSteal:     StatusTaken,
		EventReopen:    StatusUnowned,
	},
	StatusCommitted: {
		EventDuplicate: StatusClosed,
		EventStage:     StatusStaged,
		EventReopen:    StatusUnowned,
	},
	StatusStaged: {
		EventVerify: StatusVerified,
		EventReopen: StatusUnowned,
	},
	StatusVerified: {
		EventDeploy: StatusClosed,
		EventReopen: StatusUnowned,
	},
	StatusClosed: {
		EventReopen: StatusUnowned,
	},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsUnowned() bool {
	return ts == StatusUnowned
}

func (ts TicketStatus) IsTaken() bool {
	return ts == StatusTaken
}

func (ts TicketStatus) IsCommitted() bool {
	return ts == StatusCommitted
}

func (ts TicketStatus) IsStaged() bool {
	return ts == StatusStaged
}

func (ts TicketStatus) IsVerified() bool {
	return ts == StatusVerified
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// IsOpen reports whether the ticket counts as open for list filtering.
func (ts TicketStatus) IsOpen() bool {
	return ts != StatusClosed
}

func (te TicketEvent) String() string {
	return string(te)
}

// NextTicketStatus looks up the transition table. The second return value is
// false when the event is not defined for the state.
func NextTicketStatus(from TicketStatus, event TicketEvent) (TicketStatus, bool) {
	events, ok := ticketTransitions[from]
	if !ok {
		return "", false
	}
	next, ok := events[event]
	return next, ok
}

// TicketEventsFor returns the events defined for a state. Used by callers
// that present available actions (e.g. whether a ticket is stealable).
func TicketEventsFor(from TicketStatus) []TicketEvent {
	events := ticketTransitions[from]
	out := make([]TicketEvent, 0, len(events))
	for e := range events {
		out = append(out, e)
	}
	return out
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
