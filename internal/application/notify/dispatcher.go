// Package notify computes notification recipient sets per workflow event and
// emits one outbound message per recipient. Delivery is best-effort: mailer
// failures are logged, never propagated, and never batched.
package notify

import (
	"context"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/logger"
)

// Mailer is the outbound email contract. Transport and templating live
// behind it; the engine only guarantees recipients and message construction.
type Mailer interface {
	CreateNotification(ctx context.Context, t *codeticket.Ticket, recipient string) error
	UpdateNotification(ctx context.Context, t *codeticket.Ticket, recipient string) error
	StealNotification(ctx context.Context, t *codeticket.Ticket, recipient, stealerName string) error
}

// UserDirectory resolves a user's email address. Provided by the external
// account subsystem.
type UserDirectory interface {
	EmailForUser(ctx context.Context, userID uint) (string, error)
}

type Dispatcher struct {
	mailer     Mailer
	watches    codeticket.WatchRepository
	identities identity.Repository
	directory  UserDirectory
	logger     logger.Interface
}

func NewDispatcher(
	mailer Mailer,
	watches codeticket.WatchRepository,
	identities identity.Repository,
	directory UserDirectory,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		mailer:     mailer,
		watches:    watches,
		identities: identities,
		directory:  directory,
		logger:     logger,
	}
}

// TicketCreated notifies every current watcher that a ticket was opened.
func (d *Dispatcher) TicketCreated(ctx context.Context, t *codeticket.Ticket) error {
	recipients, err := d.watches.MailTo(ctx, t.ID(), false)
	if err != nil {
		return err
	}
	for _, recipient := range recipients {
		if err := d.mailer.CreateNotification(ctx, t, recipient); err != nil {
			d.logger.Warnw("failed to send create notification",
				"ticket_id", t.ID(), "recipient", recipient, "error", err)
		}
	}
	return nil
}

// TicketUpdated notifies watchers of a change. Private updates reach only
// official watchers.
func (d *Dispatcher) TicketUpdated(ctx context.Context, t *codeticket.Ticket, private bool) error {
	recipients, err := d.watches.MailTo(ctx, t.ID(), private)
	if err != nil {
		return err
	}
	for _, recipient := range recipients {
		if err := d.mailer.UpdateNotification(ctx, t, recipient); err != nil {
			d.logger.Warnw("failed to send update notification",
				"ticket_id", t.ID(), "recipient", recipient, "error", err)
		}
	}
	return nil
}

// TicketStolen notifies the volunteer a ticket was taken from. This path
// deliberately bypasses the watcher broadcast; the notice is addressed to
// the prior owner alone, with the ticket captured in its pre-steal state.
func (d *Dispatcher) TicketStolen(ctx context.Context, t *codeticket.Ticket, priorIdentityID uint, stealerName string) error {
	prior, err := d.identities.GetByID(ctx, priorIdentityID)
	if err != nil {
		return err
	}
	if prior.UserID() == nil {
		d.logger.Warnw("prior owner has no user account, skipping steal notification",
			"ticket_id", t.ID(), "identity_id", priorIdentityID)
		return nil
	}

	email, err := d.directory.EmailForUser(ctx, *prior.UserID())
	if err != nil {
		return err
	}

	if err := d.mailer.StealNotification(ctx, t, email, stealerName); err != nil {
		d.logger.Warnw("failed to send steal notification",
			"ticket_id", t.ID(), "recipient", email, "error", err)
	}
	return nil
}
