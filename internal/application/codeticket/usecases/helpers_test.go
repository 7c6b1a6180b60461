package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cesy/support-board/internal/application/codeticket/testutil"
	"github.com/cesy/support-board/internal/domain/codecommit"
	ccvo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/domain/codeticket"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	"github.com/cesy/support-board/internal/domain/identity"
)

func volunteerActor(identityID uint) identity.Actor {
	return identity.Actor{
		UserID:            identityID + 100,
		SupportIdentityID: identityID,
		Name:              "volunteer",
		Email:             "volunteer@example.org",
		Capabilities:      identity.Capabilities{IsVolunteer: true},
	}
}

func adminActor(identityID uint) identity.Actor {
	a := volunteerActor(identityID)
	a.Name = "admin"
	a.Email = "admin@example.org"
	a.Capabilities.IsAdmin = true
	return a
}

func userActor(userID uint) identity.Actor {
	return identity.Actor{
		UserID:            userID,
		SupportIdentityID: userID + 1000,
		Name:              "someone",
		Email:             "someone@example.org",
	}
}

func storedTicket(t *testing.T, id uint, status vo.TicketStatus, ownerID *uint) *codeticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := codeticket.ReconstructTicket(
		id, "Broken pagination on works index", "", "", "",
		status, ownerID, nil, nil, 1, now, now,
	)
	require.NoError(t, err)
	return tk
}

func seedVote(t *testing.T, votes *testutil.MockVoteRepository, ticketID, userID uint) {
	t.Helper()
	v, err := codeticket.NewVote(ticketID, userID, codeticket.DefaultVoteWeight)
	require.NoError(t, err)
	require.NoError(t, votes.Save(context.Background(), v))
}

func storedCommit(t *testing.T, id uint, status ccvo.CommitStatus, identityID uint, ticketID *uint) *codecommit.Commit {
	t.Helper()
	now := time.Now().UTC()
	c, err := codecommit.ReconstructCommit(
		id, "committer", "fixes issue 1", status, identityID, ticketID, 1, now, now,
	)
	require.NoError(t, err)
	return c
}
