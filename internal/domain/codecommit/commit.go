package codecommit

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	vo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/shared/biztime"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

// ticketRefPattern matches the ticket reference convention in commit
// messages, e.g. "fixes issue 42".
var ticketRefPattern = regexp.MustCompile(`issue (\d+)`)

// Commit is a pushed code commit driven through its own state machine.
// Unlike tickets, commit transitions carry no capability guard: they are
// only reachable through guarded ticket events or commit ingestion.
type Commit struct {
	id                uint
	author            string
	message           string
	status            vo.CommitStatus
	supportIdentityID uint
	codeTicketID      *uint
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

func NewCommit(author, message string, supportIdentityID uint) (*Commit, error) {
	if len(author) == 0 {
		return nil, apperrors.NewValidationError("author is required")
	}
	if supportIdentityID == 0 {
		return nil, apperrors.NewValidationError("support identity ID is required")
	}

	now := biztime.NowUTC()
	return &Commit{
		author:            author,
		message:           message,
		status:            vo.StatusUnmatched,
		supportIdentityID: supportIdentityID,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructCommit(
	id uint,
	author, message string,
	status vo.CommitStatus,
	supportIdentityID uint,
	codeTicketID *uint,
	version int,
	createdAt, updatedAt time.Time,
) (*Commit, error) {
	if id == 0 {
		return nil, fmt.Errorf("commit ID cannot be zero")
	}
	if len(author) == 0 {
		return nil, fmt.Errorf("author is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Commit{
		id:                id,
		author:            author,
		message:           message,
		status:            status,
		supportIdentityID: supportIdentityID,
		codeTicketID:      codeTicketID,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (c *Commit) ID() uint {
	return c.id
}

func (c *Commit) Author() string {
	return c.author
}

func (c *Commit) Message() string {
	return c.message
}

func (c *Commit) Status() vo.CommitStatus {
	return c.status
}

func (c *Commit) SupportIdentityID() uint {
	return c.supportIdentityID
}

func (c *Commit) CodeTicketID() *uint {
	return c.codeTicketID
}

func (c *Commit) Version() int {
	return c.version
}

func (c *Commit) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Commit) UpdatedAt() time.Time {
	return c.updatedAt
}

// Name is the display name used in lists: "<id> by <author>".
func (c *Commit) Name() string {
	return fmt.Sprintf("%d by %s", c.id, c.author)
}

func (c *Commit) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("commit ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("commit ID cannot be zero")
	}
	c.id = id
	return nil
}

// ReferencedTicketID parses the "issue <N>" reference out of the commit
// message. The second return value is false when no reference is present.
func (c *Commit) ReferencedTicketID() (uint, bool) {
	match := ticketRefPattern.FindStringSubmatch(c.message)
	if match == nil {
		return 0, false
	}
	n, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (c *Commit) fire(event vo.CommitEvent) error {
	next, ok := vo.NextCommitStatus(c.status, event)
	if !ok {
		return apperrors.NewInvalidTransitionError(
			fmt.Sprintf("event %s is not defined for commit state %s", event, c.status))
	}
	c.status = next
	c.updatedAt = biztime.NowUTC()
	c.version++
	return nil
}

// MatchTo links the commit to a ticket and moves it to matched.
func (c *Commit) MatchTo(ticketID uint) error {
	if ticketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if c.codeTicketID != nil {
		return apperrors.NewGuardFailedError("code commit already used")
	}
	if err := c.fire(vo.EventMatch); err != nil {
		return err
	}
	c.codeTicketID = &ticketID
	return nil
}

// Unmatch detaches the commit from its ticket and returns it to unmatched.
// The cascade reopening of the owning ticket is handled by the unmatch use
// case before this is called.
func (c *Commit) Unmatch() error {
	if err := c.fire(vo.EventUnmatch); err != nil {
		return err
	}
	c.codeTicketID = nil
	return nil
}

// Stage marks the commit as deployed to the test archive.
func (c *Commit) Stage() error {
	return c.fire(vo.EventStage)
}

// Verify marks the staged commit as verified.
func (c *Commit) Verify() error {
	return c.fire(vo.EventVerify)
}

// Deploy marks the commit as deployed to production. Terminal.
func (c *Commit) Deploy() error {
	return c.fire(vo.EventDeploy)
}
