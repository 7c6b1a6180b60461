package codeticket

import (
	"context"

	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	// Update persists the ticket with an optimistic version check; it
	// returns a conflict error when a concurrent transition won.
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
}

// TicketFilter mirrors the list filters of the board views: by status, by
// owner, by release, by watcher, by commenter, with open-only as the
// default scope.
type TicketFilter struct {
	Status             *vo.TicketStatus
	OwnerIdentityID    *uint
	ReleaseNoteID      *uint
	WatcherEmail       string
	CommenterIdentityID *uint
	OpenOnly           bool
	SortBy             string
	SortOrder          string
	Page               int
	PageSize           int
}

type DetailRepository interface {
	Save(ctx context.Context, d *Detail) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Detail, error)
}

type VoteRepository interface {
	Save(ctx context.Context, v *Vote) error
	FindByTicketAndUser(ctx context.Context, ticketID, userID uint) (*Vote, error)
	// SumByTicketID is the ticket's vote count: the sum of vote weights.
	SumByTicketID(ctx context.Context, ticketID uint) (int, error)
	// ReassignTicket bulk-moves all votes from one ticket to another.
	// Pre-existing duplicate rows are tolerated.
	ReassignTicket(ctx context.Context, fromTicketID, toTicketID uint) error
}

type WatchRepository interface {
	Save(ctx context.Context, w *Watch) error
	FindByTicketAndEmail(ctx context.Context, ticketID uint, email string) (*Watch, error)
	DeleteByTicketAndEmail(ctx context.Context, ticketID uint, email string) error
	// MailTo returns the deduplicated recipient list for a ticket,
	// restricted to official watchers when officialOnly is set. Dedup is a
	// read-time concern; the store tolerates duplicate rows.
	MailTo(ctx context.Context, ticketID uint, officialOnly bool) ([]string, error)
	// ReassignTicket bulk-moves all subscriptions from one ticket to another.
	ReassignTicket(ctx context.Context, fromTicketID, toTicketID uint) error
}

// SupportTicketGateway is the port to the user-facing support ticket
// subsystem, an external collaborator. Duplicating a code ticket reassigns
// its dependent support tickets; deploying resolves them.
type SupportTicketGateway interface {
	ReassignAll(ctx context.Context, fromTicketID, toTicketID uint) error
	ResolveAll(ctx context.Context, codeTicketID uint) error
}
