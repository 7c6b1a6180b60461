package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesy/support-board/internal/domain/codecommit"
	ccvo "github.com/cesy/support-board/internal/domain/codecommit/valueobjects"
	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/domain/releasenote"
	"github.com/cesy/support-board/internal/infrastructure/persistence/models"
	apperrors "github.com/cesy/support-board/internal/shared/errors"
)

func createTestCommit(t *testing.T, author, message string, identityID uint) *codecommit.Commit {
	t.Helper()
	c, err := codecommit.NewCommit(author, message, identityID)
	require.NoError(t, err)
	return c
}

func TestCodeCommitRepository(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCodeCommitRepository(database)
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		c := createTestCommit(t, "committer", "fixes issue 42", 7)
		require.NoError(t, repo.Save(ctx, c))
		assert.NotZero(t, c.ID())

		found, err := repo.GetByID(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, "committer", found.Author())
		assert.Equal(t, ccvo.StatusUnmatched, found.Status())
		assert.Nil(t, found.CodeTicketID())

		_, err = repo.GetByID(ctx, 9999)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("update persists the transition", func(t *testing.T) {
		c := createTestCommit(t, "committer", "fixes issue 42", 7)
		require.NoError(t, repo.Save(ctx, c))

		require.NoError(t, c.MatchTo(42))
		require.NoError(t, repo.Update(ctx, c))

		found, err := repo.GetByID(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, ccvo.StatusMatched, found.Status())
		require.NotNil(t, found.CodeTicketID())
		assert.Equal(t, uint(42), *found.CodeTicketID())
	})

	t.Run("stale version loses", func(t *testing.T) {
		c := createTestCommit(t, "committer", "contended", 7)
		require.NoError(t, repo.Save(ctx, c))

		first, err := repo.GetByID(ctx, c.ID())
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, c.ID())
		require.NoError(t, err)

		require.NoError(t, first.MatchTo(1))
		require.NoError(t, repo.Update(ctx, first))

		require.NoError(t, second.MatchTo(2))
		err = repo.Update(ctx, second)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("list and count by status", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCodeCommitRepository(db)

		matched := createTestCommit(t, "one", "fixes issue 5", 7)
		require.NoError(t, repo.Save(ctx, matched))
		require.NoError(t, matched.MatchTo(5))
		require.NoError(t, repo.Update(ctx, matched))

		stray := createTestCommit(t, "two", "no reference", 8)
		require.NoError(t, repo.Save(ctx, stray))

		rows, err := repo.ListByStatus(ctx, ccvo.StatusMatched)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, matched.ID(), rows[0].ID())

		count, err := repo.CountByStatus(ctx, ccvo.StatusUnmatched)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		linked, err := repo.ListByTicketID(ctx, 5)
		require.NoError(t, err)
		require.Len(t, linked, 1)
		assert.Equal(t, matched.ID(), linked[0].ID())
	})
}

func TestSupportIdentityRepository(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSupportIdentityRepository(database)
	ctx := context.Background()

	userID := uint(55)
	linked, err := identity.NewSupportIdentity("linked", &userID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, linked))

	floating, err := identity.NewSupportIdentity("floating", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, floating))

	t.Run("get by name", func(t *testing.T) {
		found, err := repo.GetByName(ctx, "floating")
		require.NoError(t, err)
		assert.Equal(t, floating.ID(), found.ID())
		assert.Nil(t, found.UserID())

		_, err = repo.GetByName(ctx, "nobody")
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("get by user", func(t *testing.T) {
		found, err := repo.GetByUserID(ctx, 55)
		require.NoError(t, err)
		assert.Equal(t, linked.ID(), found.ID())
	})

	t.Run("attach user persists", func(t *testing.T) {
		require.NoError(t, floating.AttachUser(56))
		require.NoError(t, repo.Update(ctx, floating))

		found, err := repo.GetByUserID(ctx, 56)
		require.NoError(t, err)
		assert.Equal(t, floating.ID(), found.ID())
	})
}

func TestReleaseNoteRepository(t *testing.T) {
	database := setupTestDB(t)
	repo := NewReleaseNoteRepository(database)
	ctx := context.Background()

	first, err := releasenote.NewNote("0.9.11", "maintenance")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := releasenote.NewNote("0.9.12", "bug fixes")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	t.Run("posted flag persists", func(t *testing.T) {
		second.MarkPosted()
		require.NoError(t, repo.Update(ctx, second))

		found, err := repo.GetByID(ctx, second.ID())
		require.NoError(t, err)
		assert.True(t, found.IsPosted())
	})

	t.Run("list newest first", func(t *testing.T) {
		rows, err := repo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, second.ID(), rows[0].ID())
	})

	t.Run("posted only", func(t *testing.T) {
		rows, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, second.ID(), rows[0].ID())
	})
}

func TestSupportTicketGateway(t *testing.T) {
	database := setupTestDB(t)
	gateway := NewSupportTicketGateway(database)
	ctx := context.Background()

	from, to := uint(1), uint(2)
	seed := []models.SupportTicketModel{
		{CodeTicketID: &from},
		{CodeTicketID: &from},
		{CodeTicketID: &to},
	}
	for i := range seed {
		require.NoError(t, database.Create(&seed[i]).Error)
	}

	t.Run("reassign all", func(t *testing.T) {
		require.NoError(t, gateway.ReassignAll(ctx, 1, 2))

		var count int64
		require.NoError(t, database.Model(&models.SupportTicketModel{}).
			Where("code_ticket_id = ?", 2).Count(&count).Error)
		assert.Equal(t, int64(3), count)
	})

	t.Run("resolve all", func(t *testing.T) {
		require.NoError(t, gateway.ResolveAll(ctx, 2))

		var count int64
		require.NoError(t, database.Model(&models.SupportTicketModel{}).
			Where("code_ticket_id = ? AND resolved = ?", 2, true).Count(&count).Error)
		assert.Equal(t, int64(3), count)
	})
}

func TestUserDirectory(t *testing.T) {
	database := setupTestDB(t)
	directory := NewUserDirectory(database)
	ctx := context.Background()

	user := models.UserModel{Email: "prior@example.org"}
	require.NoError(t, database.Create(&user).Error)

	email, err := directory.EmailForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "prior@example.org", email)

	_, err = directory.EmailForUser(ctx, 9999)
	assert.True(t, apperrors.IsNotFoundError(err))
}
