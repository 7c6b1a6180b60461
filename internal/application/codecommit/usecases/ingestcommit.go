package usecases

import (
	"context"
	"fmt"

	"github.com/cesy/support-board/internal/domain/codecommit"
	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

// NotificationDispatcher is the slice of the notification fan-out the
// commit ingestion path needs: the linked ticket's update broadcast.
type NotificationDispatcher interface {
	TicketUpdated(ctx context.Context, t *codeticket.Ticket, private bool) error
}

type IngestCommitCommand struct {
	Author  string
	Message string
}

type IngestCommitResult struct {
	CommitID       uint  `json:"commit_id"`
	IdentityID     uint  `json:"identity_id"`
	LinkedTicketID *uint `json:"linked_ticket_id,omitempty"`
}

type IngestCommitUseCase struct {
	commits    codecommit.Repository
	tickets    codeticket.TicketRepository
	details    codeticket.DetailRepository
	identities identity.Repository
	oracle     identity.CapabilityOracle
	tx         TransactionManager
	notifier   NotificationDispatcher
	logger     logger.Interface
}

func NewIngestCommitUseCase(
	commits codecommit.Repository,
	tickets codeticket.TicketRepository,
	details codeticket.DetailRepository,
	identities identity.Repository,
	oracle identity.CapabilityOracle,
	tx TransactionManager,
	notifier NotificationDispatcher,
	logger logger.Interface,
) *IngestCommitUseCase {
	return &IngestCommitUseCase{
		commits:    commits,
		tickets:    tickets,
		details:    details,
		identities: identities,
		oracle:     oracle,
		tx:         tx,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute records a pushed commit. The author's identity is resolved or
// created, then the message is scanned for a ticket reference and the
// referenced ticket's commit transition fired. Linking is best-effort:
// ingestion never fails because a link could not be made.
func (uc *IngestCommitUseCase) Execute(ctx context.Context, cmd IngestCommitCommand) (*IngestCommitResult, error) {
	uc.logger.Infow("executing ingest commit use case", "author", cmd.Author)

	if len(cmd.Author) == 0 {
		return nil, errors.NewValidationError("author is required")
	}

	var c *codecommit.Commit
	var ident *identity.SupportIdentity

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		ident, err = uc.resolveIdentity(ctx, cmd.Author)
		if err != nil {
			return err
		}

		c, err = codecommit.NewCommit(cmd.Author, cmd.Message, ident.ID())
		if err != nil {
			return err
		}
		return uc.commits.Save(ctx, c)
	})
	if err != nil {
		uc.logger.Errorw("failed to ingest commit", "author", cmd.Author, "error", err)
		return nil, err
	}

	result := &IngestCommitResult{CommitID: c.ID(), IdentityID: ident.ID()}

	if ticketID, ok := c.ReferencedTicketID(); ok {
		if err := uc.link(ctx, c, ident, ticketID); err != nil {
			uc.logger.Warnw("auto-link failed",
				"commit_id", c.ID(), "ticket_id", ticketID, "error", err)
		} else {
			result.LinkedTicketID = c.CodeTicketID()
		}
	}

	uc.logger.Infow("commit ingested",
		"commit_id", c.ID(), "identity_id", ident.ID(), "linked", result.LinkedTicketID != nil)
	return result, nil
}

// resolveIdentity finds the author's identity by exact name, creating one
// lazily on the first commit by an unknown author.
func (uc *IngestCommitUseCase) resolveIdentity(ctx context.Context, author string) (*identity.SupportIdentity, error) {
	existing, err := uc.identities.GetByName(ctx, author)
	if err == nil && existing != nil {
		return existing, nil
	}

	ident, err := identity.NewSupportIdentity(author, nil)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.identities.Save(ctx, ident); err != nil {
		return nil, err
	}
	return ident, nil
}

// link fires the referenced ticket's commit transition. The acting identity
// is the author when their identity maps to a registered user, otherwise the
// fallback administrative actor.
func (uc *IngestCommitUseCase) link(ctx context.Context, c *codecommit.Commit, ident *identity.SupportIdentity, ticketID uint) error {
	actor, err := uc.linkActor(ctx, ident)
	if err != nil {
		return err
	}

	var t *codeticket.Ticket
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		t, err = uc.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID))
		}

		if err := t.AttachCommit(actor, c); err != nil {
			return err
		}

		if err := uc.commits.Update(ctx, c); err != nil {
			return err
		}
		if err := uc.tickets.Update(ctx, t); err != nil {
			return err
		}
		for _, d := range t.PullPendingDetails() {
			if err := uc.details.Save(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, ev := range t.PullEvents() {
		if _, ok := ev.(codeticket.UpdateBroadcastEvent); !ok {
			continue
		}
		if err := uc.notifier.TicketUpdated(ctx, t, false); err != nil {
			uc.logger.Warnw("failed to dispatch notification",
				"ticket_id", t.ID(), "event", ev.EventName(), "error", err)
		}
	}
	return nil
}

func (uc *IngestCommitUseCase) linkActor(ctx context.Context, ident *identity.SupportIdentity) (identity.Actor, error) {
	if userID := ident.UserID(); userID != nil {
		caps, err := uc.oracle.Capabilities(ctx, *userID)
		if err != nil {
			return identity.Actor{}, err
		}
		return identity.Actor{
			UserID:            *userID,
			SupportIdentityID: ident.ID(),
			Name:              ident.Name(),
			Capabilities:      caps,
		}, nil
	}
	return uc.oracle.FallbackAdminActor(ctx)
}
