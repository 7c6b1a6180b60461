package codeticket

import (
	"fmt"
	"time"

	"github.com/cesy/support-board/internal/shared/biztime"
)

// DefaultVoteWeight is the weight used when a voter does not supply one.
const DefaultVoteWeight = 1

// Vote is one user's vote on a ticket. At most one per (ticket, user);
// enforced by the vote use case inside its transaction.
type Vote struct {
	id        uint
	ticketID  uint
	userID    uint
	weight    int
	createdAt time.Time
}

func NewVote(ticketID, userID uint, weight int) (*Vote, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if weight <= 0 {
		weight = DefaultVoteWeight
	}

	return &Vote{
		ticketID:  ticketID,
		userID:    userID,
		weight:    weight,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructVote(id, ticketID, userID uint, weight int, createdAt time.Time) (*Vote, error) {
	if id == 0 {
		return nil, fmt.Errorf("vote ID cannot be zero")
	}
	return &Vote{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		weight:    weight,
		createdAt: createdAt,
	}, nil
}

func (v *Vote) ID() uint {
	return v.id
}

func (v *Vote) TicketID() uint {
	return v.ticketID
}

func (v *Vote) UserID() uint {
	return v.userID
}

func (v *Vote) Weight() int {
	return v.weight
}

func (v *Vote) CreatedAt() time.Time {
	return v.createdAt
}

func (v *Vote) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("vote ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("vote ID cannot be zero")
	}
	v.id = id
	return nil
}
