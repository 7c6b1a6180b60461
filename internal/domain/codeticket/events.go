package codeticket

// Event is a notification-intent raised by the entity during an operation.
// The application layer drains events after a successful save and hands them
// to the notification dispatcher. Delivery is best-effort and happens outside
// the transaction boundary.
type Event interface {
	EventName() string
}

// UpdateBroadcastEvent asks for an update notification to every current
// watcher. Private broadcasts reach only official watchers.
type UpdateBroadcastEvent struct {
	Private bool
}

func (UpdateBroadcastEvent) EventName() string { return "ticket.updated" }

// StealNoticeEvent is addressed to the owner a ticket was stolen from. It is
// raised before the owner field changes and deliberately replaces the generic
// broadcast for the steal transition: the prior owner gets the mail, current
// watchers get nothing. Intentional asymmetry, preserved from the legacy
// workflow; see the steal tests.
type StealNoticeEvent struct {
	PriorIdentityID uint
	StealerName     string
}

func (StealNoticeEvent) EventName() string { return "ticket.stolen" }

// AutoWatchEvent asks for the actor to be subscribed to the ticket. Fulfilled
// idempotently by the application layer.
type AutoWatchEvent struct {
	Email    string
	Official bool
}

func (AutoWatchEvent) EventName() string { return "ticket.autowatch" }
