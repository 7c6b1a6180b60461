package codeticket

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cesy/support-board/internal/domain/codecommit"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/domain/releasenote"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	"github.com/cesy/support-board/internal/shared/biztime"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

const maxSummaryLength = 140

// Ticket is a developer-facing code ticket driven through the workflow
// state machine. All transitions pass through fire, which applies the
// generic volunteer guard, the transition table, the event-specific guard
// and effect, and then queues the audit entry and the watcher broadcast.
type Ticket struct {
	id                uint
	summary           string
	description       string
	url               string
	browser           string
	status            vo.TicketStatus
	supportIdentityID *uint
	duplicateOfID     *uint
	releaseNoteID     *uint
	version           int
	createdAt         time.Time
	updatedAt         time.Time

	pendingDetails []*Detail
	events         []Event
}

func NewTicket(summary, description, url, browser string) (*Ticket, error) {
	if len(summary) == 0 {
		return nil, apperrors.NewValidationError("summary is required")
	}
	if len(summary) > maxSummaryLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("summary exceeds maximum length of %d characters", maxSummaryLength))
	}

	now := biztime.NowUTC()
	return &Ticket{
		summary:     summary,
		description: description,
		url:         url,
		browser:     browser,
		status:      vo.StatusUnowned,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	summary, description, url, browser string,
	status vo.TicketStatus,
	supportIdentityID *uint,
	duplicateOfID *uint,
	releaseNoteID *uint,
	version int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(summary) == 0 {
		return nil, fmt.Errorf("summary is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:                id,
		summary:           summary,
		description:       description,
		url:               url,
		browser:           browser,
		status:            status,
		supportIdentityID: supportIdentityID,
		duplicateOfID:     duplicateOfID,
		releaseNoteID:     releaseNoteID,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Summary() string {
	return t.summary
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) URL() string {
	return t.url
}

func (t *Ticket) Browser() string {
	return t.browser
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) SupportIdentityID() *uint {
	return t.supportIdentityID
}

func (t *Ticket) DuplicateOfID() *uint {
	return t.duplicateOfID
}

func (t *Ticket) ReleaseNoteID() *uint {
	return t.releaseNoteID
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsDuplicate reports whether the ticket has been closed as a duplicate.
// Duplicate tickets are frozen: voting and watching mutations are redirected
// to the original.
func (t *Ticket) IsDuplicate() bool {
	return t.duplicateOfID != nil
}

// Name is the display name used in lists and notification subjects.
func (t *Ticket) Name() string {
	return "Code Ticket #" + strconv.FormatUint(uint64(t.id), 10)
}

// StatusLine renders the human-readable status. The caller supplies the
// owner byline and release label since the entity holds only references.
func (t *Ticket) StatusLine(ownerByline, releaseLabel string) string {
	switch {
	case t.status.IsUnowned() || t.supportIdentityID == nil:
		return "open"
	case t.duplicateOfID != nil:
		return fmt.Sprintf("closed as duplicate by %s", ownerByline)
	case t.releaseNoteID != nil:
		return fmt.Sprintf("deployed in %s (verified by %s)", releaseLabel, ownerByline)
	case t.status.IsStaged():
		return fmt.Sprintf("waiting for verification (committed by %s)", ownerByline)
	default:
		return fmt.Sprintf("%s by %s", t.status, ownerByline)
	}
}

// IsStealableBy reports whether the steal event is available to the actor.
func (t *Ticket) IsStealableBy(actor identity.Actor) bool {
	if _, ok := vo.NextTicketStatus(t.status, vo.EventSteal); !ok {
		return false
	}
	return t.supportIdentityID == nil || *t.supportIdentityID != actor.SupportIdentityID
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// PullEvents drains queued notification intents.
func (t *Ticket) PullEvents() []Event {
	out := t.events
	t.events = nil
	return out
}

// PullPendingDetails drains audit entries queued during the operation.
func (t *Ticket) PullPendingDetails() []*Detail {
	out := t.pendingDetails
	t.pendingDetails = nil
	for _, d := range out {
		d.setTicketID(t.id)
	}
	return out
}

func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
	t.version++
}

// fire is the generic transition dispatcher. Order matters: volunteer guard,
// table lookup, event guard, effect, state change, audit entry, broadcast.
// A failed guard or effect leaves the ticket untouched. The steal event is
// excluded from the generic broadcast; its notice is queued by the effect
// with the ticket still in its pre-steal state.
func (t *Ticket) fire(actor identity.Actor, event vo.TicketEvent, arg string, guard func() error, effect func() error) error {
	if !actor.IsVolunteer() {
		return apperrors.NewPermissionDeniedError(
			fmt.Sprintf("%s requires support volunteer capability", event))
	}

	next, ok := vo.NextTicketStatus(t.status, event)
	if !ok {
		return apperrors.NewInvalidTransitionError(
			fmt.Sprintf("event %s is not defined for state %s", event, t.status))
	}

	if guard != nil {
		if err := guard(); err != nil {
			return err
		}
	}

	from := t.status
	if effect != nil {
		if err := effect(); err != nil {
			return err
		}
	}

	t.status = next
	t.touch()

	content := fmt.Sprintf("%s -> %s", from, next)
	if arg != "" {
		content += fmt.Sprintf(" (%s)", arg)
	}
	t.pendingDetails = append(t.pendingDetails,
		NewSystemLogDetail(t.id, actor.SupportIdentityID, content, false))

	if event != vo.EventSteal {
		t.events = append(t.events, UpdateBroadcastEvent{})
	}

	return nil
}

func (t *Ticket) autoWatch(actor identity.Actor) {
	if actor.Email == "" {
		return
	}
	t.events = append(t.events, AutoWatchEvent{
		Email:    actor.Email,
		Official: actor.IsVolunteer(),
	})
}

// Take assigns an unowned ticket to the acting volunteer.
func (t *Ticket) Take(actor identity.Actor) error {
	return t.fire(actor, vo.EventTake, "", nil, func() error {
		id := actor.SupportIdentityID
		t.supportIdentityID = &id
		t.autoWatch(actor)
		return nil
	})
}

// Steal reassigns a taken ticket to a different volunteer. The prior owner
// notice is queued before the owner field changes.
func (t *Ticket) Steal(actor identity.Actor) error {
	guard := func() error {
		if t.supportIdentityID != nil && *t.supportIdentityID == actor.SupportIdentityID {
			return apperrors.NewGuardFailedError("ticket is already owned by this identity")
		}
		return nil
	}
	return t.fire(actor, vo.EventSteal, "", guard, func() error {
		if t.supportIdentityID != nil {
			t.events = append(t.events, StealNoticeEvent{
				PriorIdentityID: *t.supportIdentityID,
				StealerName:     actor.Name,
			})
		}
		id := actor.SupportIdentityID
		t.supportIdentityID = &id
		t.autoWatch(actor)
		return nil
	})
}

// MarkDuplicateOf closes the ticket as a duplicate of the original. The
// cascading reassignment of dependent support tickets, watches and votes is
// performed by the cross-entity linker inside the same transaction.
func (t *Ticket) MarkDuplicateOf(actor identity.Actor, original *Ticket) error {
	guard := func() error {
		if original == nil {
			return apperrors.NewNotFoundError("original ticket not found")
		}
		if original.ID() == t.id {
			return apperrors.NewGuardFailedError("ticket cannot be a duplicate of itself")
		}
		return nil
	}
	arg := ""
	if original != nil {
		arg = strconv.FormatUint(uint64(original.ID()), 10)
	}
	return t.fire(actor, vo.EventDuplicate, arg, guard, func() error {
		originalID := original.ID()
		t.duplicateOfID = &originalID
		id := actor.SupportIdentityID
		t.supportIdentityID = &id
		return nil
	})
}

// AttachCommit links an unmatched commit and moves the ticket to committed.
// Ownership passes to the commit's identity.
func (t *Ticket) AttachCommit(actor identity.Actor, commit *codecommit.Commit) error {
	guard := func() error {
		if commit == nil {
			return apperrors.NewNotFoundError("code commit not found")
		}
		if commit.CodeTicketID() != nil {
			return apperrors.NewGuardFailedError("code commit already used")
		}
		return nil
	}
	arg := ""
	if commit != nil {
		arg = strconv.FormatUint(uint64(commit.ID()), 10)
	}
	return t.fire(actor, vo.EventCommit, arg, guard, func() error {
		if err := commit.MatchTo(t.id); err != nil {
			return err
		}
		id := commit.SupportIdentityID()
		t.supportIdentityID = &id
		return nil
	})
}

// Reject closes the ticket with a reason. Admin only.
func (t *Ticket) Reject(actor identity.Actor, reason string) error {
	guard := func() error {
		if len(reason) == 0 {
			return apperrors.NewGuardFailedError("reject requires a reason")
		}
		if !actor.IsAdmin() {
			return apperrors.NewPermissionDeniedError("reject requires support admin capability")
		}
		return nil
	}
	return t.fire(actor, vo.EventReject, reason, guard, func() error {
		id := actor.SupportIdentityID
		t.supportIdentityID = &id
		t.autoWatch(actor)
		return nil
	})
}

// Reopen returns the ticket to unowned from any state, clearing the
// duplicate, release and owner references.
func (t *Ticket) Reopen(actor identity.Actor, reason string) error {
	guard := func() error {
		if len(reason) == 0 {
			return apperrors.NewGuardFailedError("reopen requires a reason")
		}
		return nil
	}
	return t.fire(actor, vo.EventReopen, reason, guard, func() error {
		t.duplicateOfID = nil
		t.releaseNoteID = nil
		t.supportIdentityID = nil
		return nil
	})
}

// Stage moves a committed ticket to staged, cascading to every linked
// commit. Ownership stays with the committer.
func (t *Ticket) Stage(actor identity.Actor, commits []*codecommit.Commit) error {
	return t.fire(actor, vo.EventStage, "", nil, func() error {
		for _, cc := range commits {
			if err := cc.Stage(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Verify confirms a staged fix. The verifier must differ from the current
// owner: nobody verifies their own commit.
func (t *Ticket) Verify(actor identity.Actor, commits []*codecommit.Commit) error {
	guard := func() error {
		if t.supportIdentityID != nil && *t.supportIdentityID == actor.SupportIdentityID {
			return apperrors.NewGuardFailedError("cannot verify: same person committed")
		}
		return nil
	}
	return t.fire(actor, vo.EventVerify, "", guard, func() error {
		for _, cc := range commits {
			if err := cc.Verify(); err != nil {
				return err
			}
		}
		id := actor.SupportIdentityID
		t.supportIdentityID = &id
		t.autoWatch(actor)
		return nil
	})
}

// Deploy closes a verified ticket under a release. Dependent support tickets
// are resolved by the linker inside the same transaction.
func (t *Ticket) Deploy(actor identity.Actor, note *releasenote.Note, commits []*codecommit.Commit) error {
	guard := func() error {
		if note == nil {
			return apperrors.NewNotFoundError("release note not found")
		}
		return nil
	}
	arg := ""
	if note != nil {
		arg = strconv.FormatUint(uint64(note.ID()), 10)
	}
	return t.fire(actor, vo.EventDeploy, arg, guard, func() error {
		noteID := note.ID()
		t.releaseNoteID = &noteID
		for _, cc := range commits {
			if err := cc.Deploy(); err != nil {
				return err
			}
		}
		return nil
	})
}

// GuardVote checks the voting rules: no votes on duplicates, voters must be
// logged in, and at most one vote per user per ticket.
func (t *Ticket) GuardVote(actor identity.Actor, alreadyVoted bool) error {
	if t.IsDuplicate() {
		return apperrors.NewGuardFailedError("cannot vote for a duplicate")
	}
	if !actor.IsAuthenticated() {
		return apperrors.NewPermissionDeniedError("voting requires a logged-in user")
	}
	if alreadyVoted {
		return apperrors.NewGuardFailedError("already voted")
	}
	return nil
}

// GuardWatch checks the subscription rules shared by watch and unwatch.
func (t *Ticket) GuardWatch(actor identity.Actor) error {
	if t.IsDuplicate() {
		return apperrors.NewGuardFailedError("cannot watch a duplicate")
	}
	if !actor.IsAuthenticated() {
		return apperrors.NewPermissionDeniedError("watching requires a logged-in user")
	}
	return nil
}

// Comment appends a user comment and queues an update broadcast. Official
// comments require volunteer capability; private comments must be official;
// non-unowned tickets accept official comments only.
func (t *Ticket) Comment(actor identity.Actor, content string, official, private bool) (*Detail, error) {
	if !actor.IsAuthenticated() {
		return nil, apperrors.NewPermissionDeniedError("commenting requires a logged-in user")
	}

	supportResponse := official && actor.IsVolunteer()
	if private && !supportResponse {
		return nil, apperrors.NewGuardFailedError("only official comments can be private")
	}
	if !t.status.IsUnowned() && !supportResponse {
		return nil, apperrors.NewGuardFailedError("only official comments allowed on this ticket")
	}

	detail, err := NewCommentDetail(t.id, actor.SupportIdentityID, content, supportResponse, private)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	t.pendingDetails = append(t.pendingDetails, detail)
	t.events = append(t.events, UpdateBroadcastEvent{Private: private})
	t.updatedAt = biztime.NowUTC()

	return detail, nil
}

// Edit updates the descriptive fields. Volunteers only; logs an official
// system entry and queues a broadcast.
func (t *Ticket) Edit(actor identity.Actor, summary, url, browser string) error {
	if !actor.IsVolunteer() {
		return apperrors.NewPermissionDeniedError("editing requires support volunteer capability")
	}
	if len(summary) == 0 {
		return apperrors.NewValidationError("summary is required")
	}
	if len(summary) > maxSummaryLength {
		return apperrors.NewValidationError(fmt.Sprintf("summary exceeds maximum length of %d characters", maxSummaryLength))
	}

	t.summary = summary
	t.url = url
	t.browser = browser
	t.touch()

	t.pendingDetails = append(t.pendingDetails,
		NewSystemLogDetail(t.id, actor.SupportIdentityID, "ticket edited", true))
	t.events = append(t.events, UpdateBroadcastEvent{})

	return nil
}
