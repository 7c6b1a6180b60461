// Package testutil provides mock implementations for testing the code ticket
// application layer.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cesy/support-board/internal/domain/codecommit"
	ccvo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/domain/releasenote"
	"github.com/cesy/support-board/internal/shared/biztime"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
	"github.com/cesy/support-board/internal/shared/logger"
)

// MockTicketRepository is an in-memory codeticket.TicketRepository.
type MockTicketRepository struct {
	mu     sync.RWMutex
	tickets map[uint]*codeticket.Ticket
	nextID uint

	saveError   error
	getError    error
	updateError error
	listError   error

	UpdateCalls int
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{tickets: make(map[uint]*codeticket.Ticket)}
}

// AddTicket seeds a ticket that already has an ID.
func (m *MockTicketRepository) AddTicket(t *codeticket.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.ID()] = t
	if t.ID() > m.nextID {
		m.nextID = t.ID()
	}
}

func (m *MockTicketRepository) Save(ctx context.Context, t *codeticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if t.ID() == 0 {
		m.nextID++
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *MockTicketRepository) Update(ctx context.Context, t *codeticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.tickets[t.ID()]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("ticket %d not found", t.ID()))
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id uint) (*codeticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	t, ok := m.tickets[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("ticket %d not found", id))
	}
	return t, nil
}

func (m *MockTicketRepository) List(ctx context.Context, filter codeticket.TicketFilter) ([]*codeticket.Ticket, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, 0, m.listError
	}

	ids := make([]uint, 0, len(m.tickets))
	for id := range m.tickets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*codeticket.Ticket
	for _, id := range ids {
		t := m.tickets[id]
		if filter.Status != nil && t.Status() != *filter.Status {
			continue
		}
		if filter.OpenOnly && !t.Status().IsOpen() {
			continue
		}
		if filter.OwnerIdentityID != nil {
			owner := t.SupportIdentityID()
			if owner == nil || *owner != *filter.OwnerIdentityID {
				continue
			}
		}
		if filter.ReleaseNoteID != nil {
			note := t.ReleaseNoteID()
			if note == nil || *note != *filter.ReleaseNoteID {
				continue
			}
		}
		out = append(out, t)
	}

	total := int64(len(out))
	if filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start < 0 {
			start = 0
		}
		if start > len(out) {
			start = len(out)
		}
		end := start + filter.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (m *MockTicketRepository) SetSaveError(err error)   { m.saveError = err }
func (m *MockTicketRepository) SetGetError(err error)    { m.getError = err }
func (m *MockTicketRepository) SetUpdateError(err error) { m.updateError = err }
func (m *MockTicketRepository) SetListError(err error)   { m.listError = err }

// MockDetailRepository is an in-memory codeticket.DetailRepository.
type MockDetailRepository struct {
	mu      sync.RWMutex
	details []*codeticket.Detail
	nextID  uint

	saveError error
}

func NewMockDetailRepository() *MockDetailRepository {
	return &MockDetailRepository{}
}

func (m *MockDetailRepository) Save(ctx context.Context, d *codeticket.Detail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if d.ID() == 0 {
		m.nextID++
		if err := d.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.details = append(m.details, d)
	return nil
}

func (m *MockDetailRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*codeticket.Detail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*codeticket.Detail
	for _, d := range m.details {
		if d.TicketID() == ticketID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDetailRepository) SetSaveError(err error) { m.saveError = err }

// MockVoteRepository is an in-memory codeticket.VoteRepository.
type MockVoteRepository struct {
	mu     sync.RWMutex
	votes  []*codeticket.Vote
	nextID uint

	saveError error
}

func NewMockVoteRepository() *MockVoteRepository {
	return &MockVoteRepository{}
}

func (m *MockVoteRepository) Save(ctx context.Context, v *codeticket.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if v.ID() == 0 {
		m.nextID++
		if err := v.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.votes = append(m.votes, v)
	return nil
}

func (m *MockVoteRepository) FindByTicketAndUser(ctx context.Context, ticketID, userID uint) (*codeticket.Vote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.votes {
		if v.TicketID() == ticketID && v.UserID() == userID {
			return v, nil
		}
	}
	return nil, nil
}

func (m *MockVoteRepository) SumByTicketID(ctx context.Context, ticketID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := 0
	for _, v := range m.votes {
		if v.TicketID() == ticketID {
			sum += v.Weight()
		}
	}
	return sum, nil
}

func (m *MockVoteRepository) ReassignTicket(ctx context.Context, fromTicketID, toTicketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reassigned := make([]*codeticket.Vote, 0, len(m.votes))
	for _, v := range m.votes {
		if v.TicketID() == fromTicketID {
			moved, err := codeticket.ReconstructVote(v.ID(), toTicketID, v.UserID(), v.Weight(), v.CreatedAt())
			if err != nil {
				return err
			}
			reassigned = append(reassigned, moved)
			continue
		}
		reassigned = append(reassigned, v)
	}
	m.votes = reassigned
	return nil
}

func (m *MockVoteRepository) SetSaveError(err error) { m.saveError = err }

// MockWatchRepository is an in-memory codeticket.WatchRepository.
type MockWatchRepository struct {
	mu      sync.RWMutex
	watches []*codeticket.Watch
	nextID  uint

	saveError error
}

func NewMockWatchRepository() *MockWatchRepository {
	return &MockWatchRepository{}
}

// AddWatch seeds a subscription.
func (m *MockWatchRepository) AddWatch(ticketID uint, email string, official bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	w, err := codeticket.ReconstructWatch(m.nextID, ticketID, email, official, biztime.NowUTC())
	if err != nil {
		return err
	}
	m.watches = append(m.watches, w)
	return nil
}

func (m *MockWatchRepository) Save(ctx context.Context, w *codeticket.Watch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if w.ID() == 0 {
		m.nextID++
		if err := w.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.watches = append(m.watches, w)
	return nil
}

func (m *MockWatchRepository) FindByTicketAndEmail(ctx context.Context, ticketID uint, email string) (*codeticket.Watch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.watches {
		if w.TicketID() == ticketID && w.Email() == email {
			return w, nil
		}
	}
	return nil, nil
}

func (m *MockWatchRepository) DeleteByTicketAndEmail(ctx context.Context, ticketID uint, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.watches[:0]
	for _, w := range m.watches {
		if w.TicketID() == ticketID && w.Email() == email {
			continue
		}
		kept = append(kept, w)
	}
	m.watches = kept
	return nil
}

func (m *MockWatchRepository) MailTo(ctx context.Context, ticketID uint, officialOnly bool) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, w := range m.watches {
		if w.TicketID() != ticketID {
			continue
		}
		if officialOnly && !w.IsOfficial() {
			continue
		}
		if seen[w.Email()] {
			continue
		}
		seen[w.Email()] = true
		out = append(out, w.Email())
	}
	sort.Strings(out)
	return out, nil
}

func (m *MockWatchRepository) ReassignTicket(ctx context.Context, fromTicketID, toTicketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reassigned := make([]*codeticket.Watch, 0, len(m.watches))
	for _, w := range m.watches {
		if w.TicketID() == fromTicketID {
			moved, err := codeticket.ReconstructWatch(w.ID(), toTicketID, w.Email(), w.IsOfficial(), w.CreatedAt())
			if err != nil {
				return err
			}
			reassigned = append(reassigned, moved)
			continue
		}
		reassigned = append(reassigned, w)
	}
	m.watches = reassigned
	return nil
}

// WatchCount reports the number of stored subscriptions for a ticket.
func (m *MockWatchRepository) WatchCount(ticketID uint) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, w := range m.watches {
		if w.TicketID() == ticketID {
			n++
		}
	}
	return n
}

func (m *MockWatchRepository) SetSaveError(err error) { m.saveError = err }

// MockCommitRepository is an in-memory codecommit.Repository.
type MockCommitRepository struct {
	mu      sync.RWMutex
	commits map[uint]*codecommit.Commit
	nextID  uint

	saveError   error
	getError    error
	updateError error

	UpdateCalls int
}

func NewMockCommitRepository() *MockCommitRepository {
	return &MockCommitRepository{commits: make(map[uint]*codecommit.Commit)}
}

func (m *MockCommitRepository) AddCommit(c *codecommit.Commit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits[c.ID()] = c
	if c.ID() > m.nextID {
		m.nextID = c.ID()
	}
}

func (m *MockCommitRepository) Save(ctx context.Context, c *codecommit.Commit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if c.ID() == 0 {
		m.nextID++
		if err := c.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.commits[c.ID()] = c
	return nil
}

func (m *MockCommitRepository) Update(ctx context.Context, c *codecommit.Commit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.commits[c.ID()]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("code commit %d not found", c.ID()))
	}
	m.commits[c.ID()] = c
	return nil
}

func (m *MockCommitRepository) GetByID(ctx context.Context, id uint) (*codecommit.Commit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	c, ok := m.commits[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("code commit %d not found", id))
	}
	return c, nil
}

func (m *MockCommitRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*codecommit.Commit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*codecommit.Commit
	for _, id := range m.sortedIDs() {
		c := m.commits[id]
		if ref := c.CodeTicketID(); ref != nil && *ref == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCommitRepository) ListByStatus(ctx context.Context, status ccvo.CommitStatus) ([]*codecommit.Commit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*codecommit.Commit
	for _, id := range m.sortedIDs() {
		if m.commits[id].Status() == status {
			out = append(out, m.commits[id])
		}
	}
	return out, nil
}

func (m *MockCommitRepository) CountByStatus(ctx context.Context, status ccvo.CommitStatus) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, c := range m.commits {
		if c.Status() == status {
			n++
		}
	}
	return n, nil
}

func (m *MockCommitRepository) sortedIDs() []uint {
	ids := make([]uint, 0, len(m.commits))
	for id := range m.commits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *MockCommitRepository) SetSaveError(err error)   { m.saveError = err }
func (m *MockCommitRepository) SetGetError(err error)    { m.getError = err }
func (m *MockCommitRepository) SetUpdateError(err error) { m.updateError = err }

// MockReleaseNoteRepository is an in-memory releasenote.Repository.
type MockReleaseNoteRepository struct {
	mu     sync.RWMutex
	notes  map[uint]*releasenote.Note
	nextID uint

	getError error
}

func NewMockReleaseNoteRepository() *MockReleaseNoteRepository {
	return &MockReleaseNoteRepository{notes: make(map[uint]*releasenote.Note)}
}

func (m *MockReleaseNoteRepository) AddNote(n *releasenote.Note) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[n.ID()] = n
	if n.ID() > m.nextID {
		m.nextID = n.ID()
	}
}

func (m *MockReleaseNoteRepository) Save(ctx context.Context, n *releasenote.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID() == 0 {
		m.nextID++
		if err := n.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.notes[n.ID()] = n
	return nil
}

func (m *MockReleaseNoteRepository) Update(ctx context.Context, n *releasenote.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[n.ID()]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("release note %d not found", n.ID()))
	}
	m.notes[n.ID()] = n
	return nil
}

func (m *MockReleaseNoteRepository) GetByID(ctx context.Context, id uint) (*releasenote.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	n, ok := m.notes[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("release note %d not found", id))
	}
	return n, nil
}

func (m *MockReleaseNoteRepository) List(ctx context.Context, postedOnly bool) ([]*releasenote.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uint, 0, len(m.notes))
	for id := range m.notes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	var out []*releasenote.Note
	for _, id := range ids {
		if postedOnly && !m.notes[id].IsPosted() {
			continue
		}
		out = append(out, m.notes[id])
	}
	return out, nil
}

func (m *MockReleaseNoteRepository) SetGetError(err error) { m.getError = err }

// GatewayCall records one bulk operation on the support ticket gateway.
type GatewayCall struct {
	Op           string
	FromTicketID uint
	ToTicketID   uint
}

// MockSupportTicketGateway records the cascades fired at the user-facing
// support ticket subsystem.
type MockSupportTicketGateway struct {
	mu    sync.Mutex
	calls []GatewayCall

	reassignError error
	resolveError  error
}

func NewMockSupportTicketGateway() *MockSupportTicketGateway {
	return &MockSupportTicketGateway{}
}

func (m *MockSupportTicketGateway) ReassignAll(ctx context.Context, fromTicketID, toTicketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reassignError != nil {
		return m.reassignError
	}
	m.calls = append(m.calls, GatewayCall{Op: "reassign", FromTicketID: fromTicketID, ToTicketID: toTicketID})
	return nil
}

func (m *MockSupportTicketGateway) ResolveAll(ctx context.Context, codeTicketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolveError != nil {
		return m.resolveError
	}
	m.calls = append(m.calls, GatewayCall{Op: "resolve", FromTicketID: codeTicketID})
	return nil
}

func (m *MockSupportTicketGateway) GetCalls() []GatewayCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GatewayCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockSupportTicketGateway) SetReassignError(err error) { m.reassignError = err }
func (m *MockSupportTicketGateway) SetResolveError(err error)  { m.resolveError = err }

// MockIdentityRepository is an in-memory identity.Repository.
type MockIdentityRepository struct {
	mu         sync.RWMutex
	identities map[uint]*identity.SupportIdentity
	nextID     uint
}

func NewMockIdentityRepository() *MockIdentityRepository {
	return &MockIdentityRepository{identities: make(map[uint]*identity.SupportIdentity)}
}

func (m *MockIdentityRepository) AddIdentity(si *identity.SupportIdentity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identities[si.ID()] = si
	if si.ID() > m.nextID {
		m.nextID = si.ID()
	}
}

func (m *MockIdentityRepository) Save(ctx context.Context, si *identity.SupportIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if si.ID() == 0 {
		m.nextID++
		if err := si.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.identities[si.ID()] = si
	return nil
}

func (m *MockIdentityRepository) Update(ctx context.Context, si *identity.SupportIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.identities[si.ID()]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("support identity %d not found", si.ID()))
	}
	m.identities[si.ID()] = si
	return nil
}

func (m *MockIdentityRepository) GetByID(ctx context.Context, id uint) (*identity.SupportIdentity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	si, ok := m.identities[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("support identity %d not found", id))
	}
	return si, nil
}

func (m *MockIdentityRepository) GetByName(ctx context.Context, name string) (*identity.SupportIdentity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, si := range m.identities {
		if si.Name() == name {
			return si, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("support identity %q not found", name))
}

func (m *MockIdentityRepository) GetByUserID(ctx context.Context, userID uint) (*identity.SupportIdentity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, si := range m.identities {
		if ref := si.UserID(); ref != nil && *ref == userID {
			return si, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("support identity for user %d not found", userID))
}

// MockCapabilityOracle resolves capabilities from a seeded map.
type MockCapabilityOracle struct {
	mu       sync.RWMutex
	caps     map[uint]identity.Capabilities
	fallback identity.Actor

	fallbackError error
}

func NewMockCapabilityOracle() *MockCapabilityOracle {
	return &MockCapabilityOracle{caps: make(map[uint]identity.Capabilities)}
}

func (m *MockCapabilityOracle) SetCapabilities(userID uint, caps identity.Capabilities) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caps[userID] = caps
}

func (m *MockCapabilityOracle) SetFallbackActor(actor identity.Actor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = actor
}

func (m *MockCapabilityOracle) Capabilities(ctx context.Context, userID uint) (identity.Capabilities, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.caps[userID], nil
}

func (m *MockCapabilityOracle) FallbackAdminActor(ctx context.Context) (identity.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.fallbackError != nil {
		return identity.Actor{}, m.fallbackError
	}
	return m.fallback, nil
}

func (m *MockCapabilityOracle) SetFallbackError(err error) { m.fallbackError = err }

// MockTransactionManager runs the unit of work directly. Rollback semantics
// are not simulated; tests assert on observable repository state instead.
type MockTransactionManager struct {
	mu         sync.Mutex
	beginError error

	Calls int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	beginError := m.beginError
	m.mu.Unlock()
	if beginError != nil {
		return beginError
	}
	return fn(ctx)
}

func (m *MockTransactionManager) SetBeginError(err error) { m.beginError = err }

// NotificationCall records one dispatched notification.
type NotificationCall struct {
	Kind            string
	TicketID        uint
	Private         bool
	PriorIdentityID uint
	StealerName     string
}

// MockNotifier records notification fan-out calls.
type MockNotifier struct {
	mu    sync.Mutex
	calls []NotificationCall

	createdError error
	updatedError error
	stolenError  error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) TicketCreated(ctx context.Context, t *codeticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createdError != nil {
		return m.createdError
	}
	m.calls = append(m.calls, NotificationCall{Kind: "created", TicketID: t.ID()})
	return nil
}

func (m *MockNotifier) TicketUpdated(ctx context.Context, t *codeticket.Ticket, private bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updatedError != nil {
		return m.updatedError
	}
	m.calls = append(m.calls, NotificationCall{Kind: "updated", TicketID: t.ID(), Private: private})
	return nil
}

func (m *MockNotifier) TicketStolen(ctx context.Context, t *codeticket.Ticket, priorIdentityID uint, stealerName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stolenError != nil {
		return m.stolenError
	}
	m.calls = append(m.calls, NotificationCall{
		Kind: "stolen", TicketID: t.ID(), PriorIdentityID: priorIdentityID, StealerName: stealerName,
	})
	return nil
}

func (m *MockNotifier) GetCalls() []NotificationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NotificationCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockNotifier) SetCreatedError(err error) { m.createdError = err }
func (m *MockNotifier) SetUpdatedError(err error) { m.updatedError = err }
func (m *MockNotifier) SetStolenError(err error)  { m.stolenError = err }

// LogEntry records one log call.
type LogEntry struct {
	Level   string
	Message string
}

// MockLogger collects log calls for inspection.
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg})
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg) }

func (m *MockLogger) With(args ...any) logger.Interface   { return m }
func (m *MockLogger) Named(name string) logger.Interface  { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) { m.log("DEBUG", msg) }
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  { m.log("INFO", msg) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  { m.log("WARN", msg) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) { m.log("ERROR", msg) }

// Entries returns the recorded log calls.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
