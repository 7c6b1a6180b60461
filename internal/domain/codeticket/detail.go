package codeticket

import (
	"fmt"
	"time"

	"github.com/cesy/support-board/internal/shared/biztime"
)

// Detail is an append-only entry on a ticket: either a user comment or a
// system log line written by the state machine. Workflow transitions always
// produce a system log entry; comments never do.
type Detail struct {
	id                uint
	ticketID          uint
	supportIdentityID uint
	content           string
	supportResponse   bool
	systemLog         bool
	private           bool
	createdAt         time.Time
}

// NewSystemLogDetail records a workflow transition or another engine-written
// line ("unowned -> taken", "ticket edited").
func NewSystemLogDetail(ticketID, supportIdentityID uint, content string, supportResponse bool) *Detail {
	return &Detail{
		ticketID:          ticketID,
		supportIdentityID: supportIdentityID,
		content:           content,
		supportResponse:   supportResponse,
		systemLog:         true,
		createdAt:         biztime.NowUTC(),
	}
}

// NewCommentDetail records a user comment.
func NewCommentDetail(ticketID, supportIdentityID uint, content string, supportResponse, private bool) (*Detail, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("content cannot be empty")
	}
	return &Detail{
		ticketID:          ticketID,
		supportIdentityID: supportIdentityID,
		content:           content,
		supportResponse:   supportResponse,
		systemLog:         false,
		private:           private,
		createdAt:         biztime.NowUTC(),
	}, nil
}

func ReconstructDetail(
	id uint,
	ticketID uint,
	supportIdentityID uint,
	content string,
	supportResponse, systemLog, private bool,
	createdAt time.Time,
) (*Detail, error) {
	if id == 0 {
		return nil, fmt.Errorf("detail ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Detail{
		id:                id,
		ticketID:          ticketID,
		supportIdentityID: supportIdentityID,
		content:           content,
		supportResponse:   supportResponse,
		systemLog:         systemLog,
		private:           private,
		createdAt:         createdAt,
	}, nil
}

func (d *Detail) ID() uint {
	return d.id
}

func (d *Detail) TicketID() uint {
	return d.ticketID
}

func (d *Detail) SupportIdentityID() uint {
	return d.supportIdentityID
}

func (d *Detail) Content() string {
	return d.content
}

func (d *Detail) IsSupportResponse() bool {
	return d.supportResponse
}

func (d *Detail) IsSystemLog() bool {
	return d.systemLog
}

func (d *Detail) IsPrivate() bool {
	return d.private
}

func (d *Detail) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Detail) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("detail ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("detail ID cannot be zero")
	}
	d.id = id
	return nil
}

// setTicketID is used when details are queued on a ticket that has not been
// persisted yet.
func (d *Detail) setTicketID(ticketID uint) {
	d.ticketID = ticketID
}
