package usecases

import (
	"context"

	"github.com/cesy/support-board/internal/domain/codeticket"
)

// TransactionManager runs a unit of work in one database transaction. Every
// workflow operation, single or batch, executes inside one: guards, entity
// mutation, cascades and audit appends commit atomically.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationDispatcher fans out workflow events to watcher emails. Called
// after the transaction commits; delivery is best-effort.
type NotificationDispatcher interface {
	TicketCreated(ctx context.Context, t *codeticket.Ticket) error
	TicketUpdated(ctx context.Context, t *codeticket.Ticket, private bool) error
	TicketStolen(ctx context.Context, t *codeticket.Ticket, priorIdentityID uint, stealerName string) error
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type TakeTicketExecutor interface {
	Execute(ctx context.Context, cmd TakeTicketCommand) (*TransitionResult, error)
}

type StealTicketExecutor interface {
	Execute(ctx context.Context, cmd StealTicketCommand) (*TransitionResult, error)
}

type DuplicateTicketExecutor interface {
	Execute(ctx context.Context, cmd DuplicateTicketCommand) (*TransitionResult, error)
}

type CommitTicketExecutor interface {
	Execute(ctx context.Context, cmd CommitTicketCommand) (*TransitionResult, error)
}

type RejectTicketExecutor interface {
	Execute(ctx context.Context, cmd RejectTicketCommand) (*TransitionResult, error)
}

type ReopenTicketExecutor interface {
	Execute(ctx context.Context, cmd ReopenTicketCommand) (*TransitionResult, error)
}

type StageTicketExecutor interface {
	Execute(ctx context.Context, cmd StageTicketCommand) (*TransitionResult, error)
}

type VerifyTicketExecutor interface {
	Execute(ctx context.Context, cmd VerifyTicketCommand) (*TransitionResult, error)
}

type DeployTicketExecutor interface {
	Execute(ctx context.Context, cmd DeployTicketCommand) (*TransitionResult, error)
}

type VoteTicketExecutor interface {
	Execute(ctx context.Context, cmd VoteTicketCommand) (*VoteTicketResult, error)
}

type CommentTicketExecutor interface {
	Execute(ctx context.Context, cmd CommentTicketCommand) (*CommentTicketResult, error)
}

type WatchTicketExecutor interface {
	Execute(ctx context.Context, cmd WatchTicketCommand) (*WatchTicketResult, error)
}

type UnwatchTicketExecutor interface {
	Execute(ctx context.Context, cmd UnwatchTicketCommand) (*WatchTicketResult, error)
}

type EditTicketExecutor interface {
	Execute(ctx context.Context, cmd EditTicketCommand) (*TransitionResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type StageAllExecutor interface {
	Execute(ctx context.Context, cmd StageAllCommand) (*BatchResult, error)
}

type DeployAllExecutor interface {
	Execute(ctx context.Context, cmd DeployAllCommand) (*BatchResult, error)
}
