package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesy/support-board/internal/application/codeticket/testutil"
	"github.com/cesy/support-board/internal/domain/codeticket"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	"github.com/cesy/support-board/internal/domain/identity"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

type sentMail struct {
	Kind      string
	Recipient string
	Stealer   string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail

	updateError error
}

func (m *recordingMailer) CreateNotification(ctx context.Context, t *codeticket.Ticket, recipient string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{Kind: "create", Recipient: recipient})
	return nil
}

func (m *recordingMailer) UpdateNotification(ctx context.Context, t *codeticket.Ticket, recipient string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateError != nil {
		return m.updateError
	}
	m.sent = append(m.sent, sentMail{Kind: "update", Recipient: recipient})
	return nil
}

func (m *recordingMailer) StealNotification(ctx context.Context, t *codeticket.Ticket, recipient, stealerName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{Kind: "steal", Recipient: recipient, Stealer: stealerName})
	return nil
}

type staticDirectory struct {
	emails map[uint]string
}

func (d *staticDirectory) EmailForUser(ctx context.Context, userID uint) (string, error) {
	email, ok := d.emails[userID]
	if !ok {
		return "", apperrors.NewNotFoundError("user not found")
	}
	return email, nil
}

func testTicket(t *testing.T) *codeticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := codeticket.ReconstructTicket(
		1, "Broken pagination", "", "", "", vo.StatusTaken, nil, nil, nil, 1, now, now,
	)
	require.NoError(t, err)
	return tk
}

func TestDispatcher_TicketUpdated_DeduplicatesRecipients(t *testing.T) {
	mailer := &recordingMailer{}
	watches := testutil.NewMockWatchRepository()
	require.NoError(t, watches.AddWatch(1, "a@example.org", false))
	require.NoError(t, watches.AddWatch(1, "a@example.org", true))
	require.NoError(t, watches.AddWatch(1, "b@example.org", false))

	d := NewDispatcher(mailer, watches, testutil.NewMockIdentityRepository(), &staticDirectory{}, testutil.NewMockLogger())

	err := d.TicketUpdated(context.Background(), testTicket(t), false)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "a@example.org", mailer.sent[0].Recipient)
	assert.Equal(t, "b@example.org", mailer.sent[1].Recipient)
}

func TestDispatcher_TicketUpdated_PrivateReachesOfficialWatchersOnly(t *testing.T) {
	mailer := &recordingMailer{}
	watches := testutil.NewMockWatchRepository()
	require.NoError(t, watches.AddWatch(1, "reporter@example.org", false))
	require.NoError(t, watches.AddWatch(1, "volunteer@example.org", true))

	d := NewDispatcher(mailer, watches, testutil.NewMockIdentityRepository(), &staticDirectory{}, testutil.NewMockLogger())

	err := d.TicketUpdated(context.Background(), testTicket(t), true)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "volunteer@example.org", mailer.sent[0].Recipient)
}

func TestDispatcher_TicketUpdated_MailerFailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{updateError: assert.AnError}
	watches := testutil.NewMockWatchRepository()
	require.NoError(t, watches.AddWatch(1, "a@example.org", false))

	d := NewDispatcher(mailer, watches, testutil.NewMockIdentityRepository(), &staticDirectory{}, testutil.NewMockLogger())

	err := d.TicketUpdated(context.Background(), testTicket(t), false)
	assert.NoError(t, err)
}

func TestDispatcher_TicketCreated(t *testing.T) {
	mailer := &recordingMailer{}
	watches := testutil.NewMockWatchRepository()
	require.NoError(t, watches.AddWatch(1, "creator@example.org", true))

	d := NewDispatcher(mailer, watches, testutil.NewMockIdentityRepository(), &staticDirectory{}, testutil.NewMockLogger())

	err := d.TicketCreated(context.Background(), testTicket(t))
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "create", mailer.sent[0].Kind)
}

func TestDispatcher_TicketStolen(t *testing.T) {
	t.Run("notice goes to the prior owner's account email", func(t *testing.T) {
		mailer := &recordingMailer{}
		identities := testutil.NewMockIdentityRepository()
		userID := uint(55)
		prior, err := identity.ReconstructSupportIdentity(7, "prior", &userID, time.Now().UTC(), time.Now().UTC())
		require.NoError(t, err)
		identities.AddIdentity(prior)

		directory := &staticDirectory{emails: map[uint]string{55: "prior@example.org"}}
		d := NewDispatcher(mailer, testutil.NewMockWatchRepository(), identities, directory, testutil.NewMockLogger())

		err = d.TicketStolen(context.Background(), testTicket(t), 7, "stealer")
		require.NoError(t, err)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "steal", mailer.sent[0].Kind)
		assert.Equal(t, "prior@example.org", mailer.sent[0].Recipient)
		assert.Equal(t, "stealer", mailer.sent[0].Stealer)
	})

	t.Run("skipped when the prior owner has no user account", func(t *testing.T) {
		mailer := &recordingMailer{}
		identities := testutil.NewMockIdentityRepository()
		prior, err := identity.ReconstructSupportIdentity(7, "prior", nil, time.Now().UTC(), time.Now().UTC())
		require.NoError(t, err)
		identities.AddIdentity(prior)

		d := NewDispatcher(mailer, testutil.NewMockWatchRepository(), identities, &staticDirectory{}, testutil.NewMockLogger())

		err = d.TicketStolen(context.Background(), testTicket(t), 7, "stealer")
		require.NoError(t, err)
		assert.Empty(t, mailer.sent)
	})
}
