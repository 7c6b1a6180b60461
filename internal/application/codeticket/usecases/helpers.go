package usecases

import (
	"context"
	"time"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/shared/logger"
)

const timeLayout = time.RFC3339

// TransitionResult is the common outcome of a single-ticket workflow event.
type TransitionResult struct {
	TicketID  uint   `json:"ticket_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

func newTransitionResult(t *codeticket.Ticket) *TransitionResult {
	return &TransitionResult{
		TicketID:  t.ID(),
		Status:    t.Status().String(),
		UpdatedAt: t.UpdatedAt().Format(timeLayout),
	}
}

// saveDetails persists the audit entries queued on the ticket during the
// current operation. Must run inside the operation's transaction.
func saveDetails(ctx context.Context, details codeticket.DetailRepository, t *codeticket.Ticket) error {
	for _, d := range t.PullPendingDetails() {
		if err := details.Save(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// ensureWatching subscribes an email idempotently: watching twice is a no-op.
func ensureWatching(ctx context.Context, watches codeticket.WatchRepository, ticketID uint, email string, official bool) error {
	existing, err := watches.FindByTicketAndEmail(ctx, ticketID, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	w, err := codeticket.NewWatch(ticketID, email, official)
	if err != nil {
		return err
	}
	return watches.Save(ctx, w)
}

// applyWatchEvents fulfills auto-watch intents inside the transaction and
// returns the remaining notification events for post-commit dispatch.
func applyWatchEvents(ctx context.Context, watches codeticket.WatchRepository, t *codeticket.Ticket, events []codeticket.Event) ([]codeticket.Event, error) {
	remaining := make([]codeticket.Event, 0, len(events))
	for _, ev := range events {
		if aw, ok := ev.(codeticket.AutoWatchEvent); ok {
			if err := ensureWatching(ctx, watches, t.ID(), aw.Email, aw.Official); err != nil {
				return nil, err
			}
			continue
		}
		remaining = append(remaining, ev)
	}
	return remaining, nil
}

// dispatchEvents sends the queued notifications after the transaction has
// committed. Failures are logged and swallowed: delivery is best-effort.
func dispatchEvents(ctx context.Context, notifier NotificationDispatcher, log logger.Interface, t *codeticket.Ticket, events []codeticket.Event) {
	for _, ev := range events {
		var err error
		switch e := ev.(type) {
		case codeticket.UpdateBroadcastEvent:
			err = notifier.TicketUpdated(ctx, t, e.Private)
		case codeticket.StealNoticeEvent:
			err = notifier.TicketStolen(ctx, t, e.PriorIdentityID, e.StealerName)
		}
		if err != nil {
			log.Warnw("failed to dispatch notification",
				"ticket_id", t.ID(), "event", ev.EventName(), "error", err)
		}
	}
}
