package usecases

import (
	"context"

	"github.com/cesy/support-board/internal/domain/codeticket"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	"github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

type ListTicketsQuery struct {
	Status              string
	OwnerIdentityID     *uint
	ReleaseNoteID       *uint
	WatcherEmail        string
	CommenterIdentityID *uint
	IncludeClosed       bool
	SortBy              string
	SortOrder           string
	Page                int
	PageSize            int
}

type TicketSummary struct {
	TicketID  uint   `json:"ticket_id"`
	Name      string `json:"name"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	VoteCount int    `json:"vote_count"`
	UpdatedAt string `json:"updated_at"`
}

type ListTicketsResult struct {
	Tickets  []TicketSummary `json:"tickets"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ListTicketsUseCase struct {
	tickets codeticket.TicketRepository
	votes   codeticket.VoteRepository
	logger  logger.Interface
}

func NewListTicketsUseCase(
	tickets codeticket.TicketRepository,
	votes codeticket.VoteRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		tickets: tickets,
		votes:   votes,
		logger:  logger,
	}
}

// Execute lists tickets for the board views. Closed tickets are excluded
// unless asked for explicitly or a closed status is named.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	uc.logger.Debugw("executing list tickets use case",
		"status", q.Status, "sort_by", q.SortBy, "page", q.Page)

	filter := codeticket.TicketFilter{
		OwnerIdentityID:     q.OwnerIdentityID,
		ReleaseNoteID:       q.ReleaseNoteID,
		WatcherEmail:        q.WatcherEmail,
		CommenterIdentityID: q.CommenterIdentityID,
		OpenOnly:            !q.IncludeClosed,
		SortBy:              q.SortBy,
		SortOrder:           q.SortOrder,
		Page:                q.Page,
		PageSize:            q.PageSize,
	}

	if q.Status != "" {
		status, err := vo.NewTicketStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
		filter.OpenOnly = false
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	tickets, total, err := uc.tickets.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	out := make([]TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		count, err := uc.votes.SumByTicketID(ctx, t.ID())
		if err != nil {
			uc.logger.Errorw("failed to count votes", "ticket_id", t.ID(), "error", err)
			return nil, err
		}
		out = append(out, TicketSummary{
			TicketID:  t.ID(),
			Name:      t.Name(),
			Summary:   t.Summary(),
			Status:    t.Status().String(),
			VoteCount: count,
			UpdatedAt: t.UpdatedAt().Format(timeLayout),
		})
	}

	return &ListTicketsResult{
		Tickets:  out,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
