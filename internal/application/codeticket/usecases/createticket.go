package usecases

import (
	"context"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type CreateTicketCommand struct {
	Summary     string
	Description string
	URL         string
	Browser     string
	Actor       identity.Actor
}

type CreateTicketResult struct {
	TicketID uint   `json:"ticket_id"`
	Status   string `json:"status"`
}

type CreateTicketUseCase struct {
	tickets  codeticket.TicketRepository
	watches  codeticket.WatchRepository
	tx       TransactionManager
	notifier NotificationDispatcher
	logger   logger.Interface
}

func NewCreateTicketUseCase(
	tickets codeticket.TicketRepository,
	watches codeticket.WatchRepository,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		tickets:  tickets,
		watches:  watches,
		tx:       tx,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute files a new code ticket from the intake flow. The ticket starts
// unowned; the filing volunteer is subscribed to updates.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case",
		"identity_id", cmd.Actor.SupportIdentityID)

	if !cmd.Actor.IsVolunteer() {
		return nil, errors.NewPermissionDeniedError("filing a code ticket requires support volunteer capability")
	}

	t, err := codeticket.NewTicket(cmd.Summary, cmd.Description, cmd.URL, cmd.Browser)
	if err != nil {
		return nil, err
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.tickets.Save(ctx, t); err != nil {
			return err
		}
		if cmd.Actor.Email != "" {
			return ensureWatching(ctx, uc.watches, t.ID(), cmd.Actor.Email, true)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, err
	}

	if err := uc.notifier.TicketCreated(ctx, t); err != nil {
		uc.logger.Warnw("failed to dispatch creation notification", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket created", "ticket_id", t.ID(), "status", t.Status().String())
	return &CreateTicketResult{TicketID: t.ID(), Status: t.Status().String()}, nil
}
