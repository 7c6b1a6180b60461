package codecommit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

func commitWith(t *testing.T, status vo.CommitStatus, ticketID *uint) *Commit {
	t.Helper()
	now := time.Now().UTC()
	c, err := ReconstructCommit(1, "committer", "message", status, 42, ticketID, 1, now, now)
	require.NoError(t, err)
	return c
}

func TestNewCommit(t *testing.T) {
	c, err := NewCommit("committer", "fixes issue 7", 42)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusUnmatched, c.Status())
	assert.Nil(t, c.CodeTicketID())
	assert.Equal(t, 1, c.Version())

	_, err = NewCommit("", "message", 42)
	assert.True(t, apperrors.IsValidationError(err))

	_, err = NewCommit("committer", "message", 0)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestCommit_ReferencedTicketID(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantID  uint
		wantOK  bool
	}{
		{"plain reference", "fixes issue 42", 42, true},
		{"reference mid-sentence", "rework pagination, closes issue 7 for good", 7, true},
		{"first reference wins", "issue 3 and issue 9", 3, true},
		{"no reference", "refactor mailer setup", 0, false},
		{"zero is not a ticket", "fixes issue 0", 0, false},
		{"bare word issue", "known issue with caching", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now().UTC()
			c, err := ReconstructCommit(1, "committer", tt.message, vo.StatusUnmatched, 42, nil, 1, now, now)
			require.NoError(t, err)

			id, ok := c.ReferencedTicketID()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestCommit_MatchTo(t *testing.T) {
	t.Run("match links and advances", func(t *testing.T) {
		c := commitWith(t, vo.StatusUnmatched, nil)
		err := c.MatchTo(9)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusMatched, c.Status())
		require.NotNil(t, c.CodeTicketID())
		assert.Equal(t, uint(9), *c.CodeTicketID())
		assert.Equal(t, 2, c.Version())
	})

	t.Run("already linked", func(t *testing.T) {
		ticketID := uint(5)
		c := commitWith(t, vo.StatusMatched, &ticketID)
		err := c.MatchTo(9)
		assert.True(t, apperrors.IsGuardFailedError(err))
	})

	t.Run("zero ticket", func(t *testing.T) {
		c := commitWith(t, vo.StatusUnmatched, nil)
		err := c.MatchTo(0)
		assert.True(t, apperrors.IsValidationError(err))
	})
}

func TestCommit_Unmatch(t *testing.T) {
	ticketID := uint(5)

	t.Run("from matched", func(t *testing.T) {
		c := commitWith(t, vo.StatusMatched, &ticketID)
		require.NoError(t, c.Unmatch())
		assert.Equal(t, vo.StatusUnmatched, c.Status())
		assert.Nil(t, c.CodeTicketID())
	})

	t.Run("from staged", func(t *testing.T) {
		c := commitWith(t, vo.StatusStaged, &ticketID)
		require.NoError(t, c.Unmatch())
		assert.Equal(t, vo.StatusUnmatched, c.Status())
	})

	t.Run("verified commits stay put", func(t *testing.T) {
		c := commitWith(t, vo.StatusVerified, &ticketID)
		err := c.Unmatch()
		assert.True(t, apperrors.IsInvalidTransitionError(err))
		assert.Equal(t, uint(5), *c.CodeTicketID())
	})
}

func TestCommit_StageVerifyDeploy(t *testing.T) {
	ticketID := uint(5)
	c := commitWith(t, vo.StatusMatched, &ticketID)

	require.NoError(t, c.Stage())
	assert.Equal(t, vo.StatusStaged, c.Status())

	require.NoError(t, c.Verify())
	assert.Equal(t, vo.StatusVerified, c.Status())

	require.NoError(t, c.Deploy())
	assert.Equal(t, vo.StatusDeployed, c.Status())

	// terminal
	assert.True(t, apperrors.IsInvalidTransitionError(c.Unmatch()))
	assert.True(t, apperrors.IsInvalidTransitionError(c.Stage()))
}

func TestCommit_Name(t *testing.T) {
	c := commitWith(t, vo.StatusUnmatched, nil)
	assert.Equal(t, "1 by committer", c.Name())
}
