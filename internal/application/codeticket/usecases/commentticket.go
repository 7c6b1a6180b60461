package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
	"github.com/cesy/support-board/internal/shared/markdown"
)

type CommentTicketCommand struct {
	TicketID uint
	Content  string
	Official bool
	Private  bool
	Actor    identity.Actor
}

type CommentTicketResult struct {
	TicketID uint `json:"ticket_id"`
	DetailID uint `json:"detail_id"`
}

type CommentTicketUseCase struct {
	tickets   codeticket.TicketRepository
	details   codeticket.DetailRepository
	watches   codeticket.WatchRepository
	sanitizer markdown.Service
	tx        TransactionManager
	notifier  NotificationDispatcher
	logger    logger.Interface
}

func NewCommentTicketUseCase(
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	watches codeticket.WatchRepository,
	sanitizer markdown.Service,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *CommentTicketUseCase {
	return &CommentTicketUseCase{
		tickets:   tickets,
		details:   details,
		watches:   watches,
		sanitizer: sanitizer,
		tx:        tx,
		notifier:  notifier,
		logger:    logger,
	}
}

// Execute appends a comment. Official comments require volunteer
// capability, private comments must be official, and non-unowned tickets
// accept official comments only. Private broadcasts reach official
// watchers alone.
func (uc *CommentTicketUseCase) Execute(ctx context.Context, cmd CommentTicketCommand) (*CommentTicketResult, error) {
	uc.logger.Infow("executing comment ticket use case",
		"ticket_id", cmd.TicketID, "identity_id", cmd.Actor.SupportIdentityID,
		"official", cmd.Official, "private", cmd.Private)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if len(cmd.Content) == 0 {
		return nil, errors.NewValidationError("content is required")
	}

	var t *codeticket.Ticket
	var detail *codeticket.Detail
	var pending []codeticket.Event

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		t, err = uc.tickets.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}

		content := uc.sanitizer.StripTags(cmd.Content)
		detail, err = t.Comment(cmd.Actor, content, cmd.Official, cmd.Private)
		if err != nil {
			return err
		}

		if err := saveDetails(ctx, uc.details, t); err != nil {
			return err
		}

		pending, err = applyWatchEvents(ctx, uc.watches, t, t.PullEvents())
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to comment on ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	dispatchEvents(ctx, uc.notifier, uc.logger, t, pending)

	uc.logger.Infow("comment added", "ticket_id", t.ID(), "detail_id", detail.ID())
	return &CommentTicketResult{TicketID: t.ID(), DetailID: detail.ID()}, nil
}
