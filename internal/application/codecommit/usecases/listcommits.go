package usecases

import (
	"context"
	"time"

	"github.com/cesy/support-board/internal/domain/codecommit"
	vo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

type ListCommitsQuery struct {
	Status   string
	TicketID uint
}

type CommitSummary struct {
	CommitID  uint   `json:"commit_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	TicketID  *uint  `json:"ticket_id,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type ListCommitsResult struct {
	Commits []CommitSummary `json:"commits"`
}

type ListCommitsUseCase struct {
	commits codecommit.Repository
	logger  logger.Interface
}

func NewListCommitsUseCase(commits codecommit.Repository, logger logger.Interface) *ListCommitsUseCase {
	return &ListCommitsUseCase{commits: commits, logger: logger}
}

// Execute lists commits either by status or by linked ticket.
func (uc *ListCommitsUseCase) Execute(ctx context.Context, q ListCommitsQuery) (*ListCommitsResult, error) {
	uc.logger.Debugw("executing list commits use case", "status", q.Status, "ticket_id", q.TicketID)

	var (
		commits []*codecommit.Commit
		err     error
	)
	switch {
	case q.TicketID != 0:
		commits, err = uc.commits.ListByTicketID(ctx, q.TicketID)
	case q.Status != "":
		var status vo.CommitStatus
		status, err = vo.NewCommitStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		commits, err = uc.commits.ListByStatus(ctx, status)
	default:
		return nil, errors.NewValidationError("either status or ticket ID is required")
	}
	if err != nil {
		uc.logger.Errorw("failed to list commits", "error", err)
		return nil, err
	}

	out := make([]CommitSummary, 0, len(commits))
	for _, c := range commits {
		out = append(out, CommitSummary{
			CommitID:  c.ID(),
			Name:      c.Name(),
			Status:    c.Status().String(),
			TicketID:  c.CodeTicketID(),
			UpdatedAt: c.UpdatedAt().Format(time.RFC3339),
		})
	}
	return &ListCommitsResult{Commits: out}, nil
}
