package codeticket

import (
	"fmt"
	"time"

	"github.com/cesy/support-board/internal/shared/biztime"
)

// Watch subscribes an email address to update notifications for a ticket.
// The store does not enforce uniqueness; duplicate rows are tolerated and
// recipients are deduplicated at read time (see WatchRepository.MailTo).
type Watch struct {
	id       uint
	ticketID uint
	email    string
	// official marks a subscription created by a support volunteer. Private
	// events notify official watchers only.
	official  bool
	createdAt time.Time
}

func NewWatch(ticketID uint, email string, official bool) (*Watch, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}

	return &Watch{
		ticketID:  ticketID,
		email:     email,
		official:  official,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructWatch(id, ticketID uint, email string, official bool, createdAt time.Time) (*Watch, error) {
	if id == 0 {
		return nil, fmt.Errorf("watch ID cannot be zero")
	}
	return &Watch{
		id:        id,
		ticketID:  ticketID,
		email:     email,
		official:  official,
		createdAt: createdAt,
	}, nil
}

func (w *Watch) ID() uint {
	return w.id
}

func (w *Watch) TicketID() uint {
	return w.ticketID
}

func (w *Watch) Email() string {
	return w.email
}

func (w *Watch) IsOfficial() bool {
	return w.official
}

func (w *Watch) CreatedAt() time.Time {
	return w.createdAt
}

func (w *Watch) SetID(id uint) error {
	if w.id != 0 {
		return fmt.Errorf("watch ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("watch ID cannot be zero")
	}
	w.id = id
	return nil
}
