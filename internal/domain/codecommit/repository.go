package codecommit

import (
	"context"

	vo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
)

type Repository interface {
	Save(ctx context.Context, c *Commit) error
	Update(ctx context.Context, c *Commit) error
	GetByID(ctx context.Context, id uint) (*Commit, error)
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Commit, error)
	ListByStatus(ctx context.Context, status vo.CommitStatus) ([]*Commit, error)
	CountByStatus(ctx context.Context, status vo.CommitStatus) (int64, error)
}
