package usecases

import "context"

// TransactionManager runs a unit of work in one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type IngestCommitExecutor interface {
	Execute(ctx context.Context, cmd IngestCommitCommand) (*IngestCommitResult, error)
}

type UnmatchCommitExecutor interface {
	Execute(ctx context.Context, cmd UnmatchCommitCommand) (*UnmatchCommitResult, error)
}

type ListCommitsExecutor interface {
	Execute(ctx context.Context, query ListCommitsQuery) (*ListCommitsResult, error)
}
