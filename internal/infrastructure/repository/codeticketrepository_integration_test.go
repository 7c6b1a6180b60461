package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/domain/codeticket"
	vo "github.com/cesy/support-board/internal/domain/codeticket/valueobjects"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.AutoMigrate(
		&models.CodeTicketModel{},
		&models.CodeDetailModel{},
		&models.CodeVoteModel{},
		&models.CodeWatchModel{},
		&models.CodeCommitModel{},
		&models.SupportIdentityModel{},
		&models.ReleaseNoteModel{},
		&models.SupportTicketModel{},
		&models.UserModel{},
	)
	require.NoError(t, err)

	return database
}

func createTestTicket(t *testing.T, summary string) *codeticket.Ticket {
	t.Helper()
	tk, err := codeticket.NewTicket(summary, "steps to reproduce", "https://example.org/works", "Firefox")
	require.NoError(t, err)
	return tk
}

func takenActor(identityID uint) identity.Actor {
	return identity.Actor{
		UserID:            identityID + 100,
		SupportIdentityID: identityID,
		Name:              "volunteer",
		Email:             "volunteer@example.org",
		Capabilities:      identity.Capabilities{IsVolunteer: true},
	}
}

func TestCodeTicketRepository_SaveAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCodeTicketRepository(database)
	ctx := context.Background()

	tk := createTestTicket(t, "Broken pagination on works index")
	require.NoError(t, repo.Save(ctx, tk))
	assert.NotZero(t, tk.ID())

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, tk.Summary(), found.Summary())
	assert.Equal(t, vo.StatusUnowned, found.Status())
	assert.Equal(t, 1, found.Version())

	_, err = repo.GetByID(ctx, 9999)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCodeTicketRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCodeTicketRepository(database)
	ctx := context.Background()

	t.Run("update persists the transition", func(t *testing.T) {
		tk := createTestTicket(t, "Update target")
		require.NoError(t, repo.Save(ctx, tk))

		require.NoError(t, tk.Take(takenActor(7)))
		tk.PullPendingDetails()
		tk.PullEvents()

		require.NoError(t, repo.Update(ctx, tk))

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusTaken, found.Status())
		assert.Equal(t, 2, found.Version())
		require.NotNil(t, found.SupportIdentityID())
		assert.Equal(t, uint(7), *found.SupportIdentityID())
	})

	t.Run("stale version loses", func(t *testing.T) {
		tk := createTestTicket(t, "Contended ticket")
		require.NoError(t, repo.Save(ctx, tk))

		first, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)

		require.NoError(t, first.Take(takenActor(7)))
		require.NoError(t, repo.Update(ctx, first))

		require.NoError(t, second.Take(takenActor(8)))
		err = repo.Update(ctx, second)
		assert.True(t, apperrors.IsConflictError(err))
	})
}

func TestCodeTicketRepository_List(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCodeTicketRepository(database)
	ctx := context.Background()

	open := createTestTicket(t, "Still open")
	require.NoError(t, repo.Save(ctx, open))

	taken := createTestTicket(t, "Being worked")
	require.NoError(t, repo.Save(ctx, taken))
	require.NoError(t, taken.Take(takenActor(7)))
	taken.PullPendingDetails()
	taken.PullEvents()
	require.NoError(t, repo.Update(ctx, taken))

	closed := createTestTicket(t, "Already rejected")
	require.NoError(t, repo.Save(ctx, closed))
	admin := takenActor(8)
	admin.Capabilities.IsAdmin = true
	require.NoError(t, closed.Reject(admin, "not reproducible"))
	closed.PullPendingDetails()
	closed.PullEvents()
	require.NoError(t, repo.Update(ctx, closed))

	t.Run("open only excludes closed", func(t *testing.T) {
		rows, total, err := repo.List(ctx, codeticket.TicketFilter{OpenOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, rows, 2)
	})

	t.Run("explicit status filter", func(t *testing.T) {
		status := vo.StatusTaken
		rows, total, err := repo.List(ctx, codeticket.TicketFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, taken.ID(), rows[0].ID())
	})

	t.Run("owner filter", func(t *testing.T) {
		owner := uint(7)
		rows, _, err := repo.List(ctx, codeticket.TicketFilter{OwnerIdentityID: &owner})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, taken.ID(), rows[0].ID())
	})

	t.Run("watcher filter", func(t *testing.T) {
		watches := NewCodeWatchRepository(database)
		w, err := codeticket.NewWatch(open.ID(), "watcher@example.org", false)
		require.NoError(t, err)
		require.NoError(t, watches.Save(ctx, w))

		rows, _, err := repo.List(ctx, codeticket.TicketFilter{WatcherEmail: "watcher@example.org"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, open.ID(), rows[0].ID())
	})

	t.Run("pagination", func(t *testing.T) {
		rows, total, err := repo.List(ctx, codeticket.TicketFilter{
			SortBy: "id", SortOrder: "asc", Page: 1, PageSize: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, rows, 2)
	})

	t.Run("vote sort puts the most voted first", func(t *testing.T) {
		votes := NewCodeVoteRepository(database)
		for _, userID := range []uint{1, 2, 3} {
			v, err := codeticket.NewVote(taken.ID(), userID, 1)
			require.NoError(t, err)
			require.NoError(t, votes.Save(ctx, v))
		}

		rows, _, err := repo.List(ctx, codeticket.TicketFilter{SortBy: "votes", SortOrder: "desc"})
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, taken.ID(), rows[0].ID())
	})
}

func TestCodeDetailRepository_OrderedByCreation(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCodeDetailRepository(database)
	ctx := context.Background()

	first := codeticket.NewSystemLogDetail(1, 7, "unowned -> taken", false)
	second := codeticket.NewSystemLogDetail(1, 7, "taken -> committed (5)", false)
	other := codeticket.NewSystemLogDetail(2, 7, "unowned -> closed (spam)", false)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	rows, err := repo.ListByTicketID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "unowned -> taken", rows[0].Content())
	assert.Equal(t, "taken -> committed (5)", rows[1].Content())
}

func TestCodeVoteRepository(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCodeVoteRepository(database)
	ctx := context.Background()

	seed := func(ticketID, userID uint, weight int) {
		v, err := codeticket.NewVote(ticketID, userID, weight)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, v))
	}
	seed(1, 10, 1)
	seed(1, 11, 2)
	seed(2, 10, 1)

	t.Run("sum by ticket", func(t *testing.T) {
		sum, err := repo.SumByTicketID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, sum)

		sum, err = repo.SumByTicketID(ctx, 99)
		require.NoError(t, err)
		assert.Zero(t, sum)
	})

	t.Run("find by ticket and user", func(t *testing.T) {
		v, err := repo.FindByTicketAndUser(ctx, 1, 10)
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 1, v.Weight())

		missing, err := repo.FindByTicketAndUser(ctx, 1, 99)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("reassign moves votes in bulk", func(t *testing.T) {
		require.NoError(t, repo.ReassignTicket(ctx, 1, 2))

		sum, err := repo.SumByTicketID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 4, sum)

		sum, err = repo.SumByTicketID(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, sum)
	})
}

func TestCodeWatchRepository(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCodeWatchRepository(database)
	ctx := context.Background()

	seed := func(ticketID uint, email string, official bool) {
		w, err := codeticket.NewWatch(ticketID, email, official)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, w))
	}
	seed(1, "b@example.org", false)
	seed(1, "a@example.org", true)
	seed(1, "a@example.org", false) // duplicate row, tolerated
	seed(2, "c@example.org", false)

	t.Run("mail to deduplicates and sorts", func(t *testing.T) {
		recipients, err := repo.MailTo(ctx, 1, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a@example.org", "b@example.org"}, recipients)
	})

	t.Run("official only restricts the audience", func(t *testing.T) {
		recipients, err := repo.MailTo(ctx, 1, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"a@example.org"}, recipients)
	})

	t.Run("find and delete", func(t *testing.T) {
		w, err := repo.FindByTicketAndEmail(ctx, 1, "b@example.org")
		require.NoError(t, err)
		require.NotNil(t, w)

		require.NoError(t, repo.DeleteByTicketAndEmail(ctx, 1, "b@example.org"))

		gone, err := repo.FindByTicketAndEmail(ctx, 1, "b@example.org")
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("reassign moves subscriptions in bulk", func(t *testing.T) {
		require.NoError(t, repo.ReassignTicket(ctx, 1, 2))

		recipients, err := repo.MailTo(ctx, 2, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a@example.org", "c@example.org"}, recipients)
	})
}
