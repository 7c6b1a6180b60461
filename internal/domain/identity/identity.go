package identity

import (
	"fmt"
	"time"

	"github.com/cesy/support-board/internal/shared/biztime"
)

// SupportIdentity is a named persona used for attribution of volunteer and
// commit actions. It is not necessarily tied to a login: the first commit by
// an unknown author name creates one lazily.
type SupportIdentity struct {
	id        uint
	name      string
	userID    *uint
	createdAt time.Time
	updatedAt time.Time
}

func NewSupportIdentity(name string, userID *uint) (*SupportIdentity, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}

	now := biztime.NowUTC()
	return &SupportIdentity{
		name:      name,
		userID:    userID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSupportIdentity(
	id uint,
	name string,
	userID *uint,
	createdAt, updatedAt time.Time,
) (*SupportIdentity, error) {
	if id == 0 {
		return nil, fmt.Errorf("support identity ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}

	return &SupportIdentity{
		id:        id,
		name:      name,
		userID:    userID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *SupportIdentity) ID() uint {
	return s.id
}

func (s *SupportIdentity) Name() string {
	return s.name
}

func (s *SupportIdentity) UserID() *uint {
	return s.userID
}

func (s *SupportIdentity) CreatedAt() time.Time {
	return s.createdAt
}

func (s *SupportIdentity) UpdatedAt() time.Time {
	return s.updatedAt
}

// Byline is the display attribution used in status lines and audit views.
func (s *SupportIdentity) Byline() string {
	return s.name
}

func (s *SupportIdentity) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("support identity ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("support identity ID cannot be zero")
	}
	s.id = id
	return nil
}

// AttachUser links the identity to a registered user account.
func (s *SupportIdentity) AttachUser(userID uint) error {
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	if s.userID != nil {
		return fmt.Errorf("support identity already belongs to a user")
	}
	s.userID = &userID
	s.updatedAt = biztime.NowUTC()
	return nil
}
