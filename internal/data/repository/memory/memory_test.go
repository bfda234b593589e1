package memory

import (
	"context"
	"errors"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMovie(t *testing.T, repo *repository.Repository) (*entity.User, *entity.Movie) {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{Username: "testuser", Email: "testuser@example.com"}
	require.NoError(t, repo.User.Create(ctx, user))

	movie := &entity.Movie{Title: "Test Movie", OwnerID: user.ID}
	require.NoError(t, repo.Movie.Create(ctx, movie))
	return user, movie
}

func TestIDsAreMonotonic(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()
	_, first := seedMovie(t, repo)

	second := &entity.Movie{Title: "Second", OwnerID: first.OwnerID}
	require.NoError(t, repo.Movie.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	require.NoError(t, repo.Movie.Delete(ctx, first.ID))
	third := &entity.Movie{Title: "Third", OwnerID: first.OwnerID}
	require.NoError(t, repo.Movie.Create(ctx, third))
	assert.Equal(t, int64(3), third.ID, "ids of deleted movies are not reused")
}

func TestUserUniqueness(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()
	require.NoError(t, repo.User.Create(ctx, &entity.User{Username: "a", Email: "a@example.com"}))

	err := repo.User.Create(ctx, &entity.User{Username: "a", Email: "other@example.com"})
	assert.ErrorIs(t, err, utils.ErrConflict)

	err = repo.User.Create(ctx, &entity.User{Username: "b", Email: "A@example.com"})
	assert.ErrorIs(t, err, utils.ErrEmailTaken)
}

func TestDeleteMovieCascades(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()
	user, movie := seedMovie(t, repo)

	require.NoError(t, repo.Rating.Create(ctx, &entity.Rating{MovieID: movie.ID, UserID: user.ID, Value: 4}))
	comment := &entity.Comment{MovieID: &movie.ID, UserID: user.ID, Text: "great"}
	require.NoError(t, repo.Comment.Create(ctx, comment))
	reply := &entity.Reply{CommentID: comment.ID, UserID: user.ID, Text: "agreed"}
	require.NoError(t, repo.Reply.Create(ctx, reply))

	require.NoError(t, repo.Movie.Delete(ctx, movie.ID))

	ratings, err := repo.Rating.FindByMovieID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Empty(t, ratings)

	found, err := repo.Comment.FindByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	foundReply, err := repo.Reply.FindByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.Nil(t, foundReply)

	assert.ErrorIs(t, repo.Movie.Delete(ctx, movie.ID), repository.ErrNoRowsAffected)
}

func TestRepliesKeepInsertionOrder(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()
	user, _ := seedMovie(t, repo)

	comment := &entity.Comment{UserID: user.ID, Text: "thread"}
	require.NoError(t, repo.Comment.Create(ctx, comment))

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Reply.Create(ctx, &entity.Reply{CommentID: comment.ID, UserID: user.ID, Text: text}))
	}

	grouped, err := repo.Reply.FindByCommentIDs(ctx, []int64{comment.ID})
	require.NoError(t, err)
	require.Len(t, grouped[comment.ID], 3)
	assert.Equal(t, "three", grouped[comment.ID][2].Text)
}

func TestForeignKeysOnCreate(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()
	missing := int64(99)

	assert.ErrorIs(t, repo.Rating.Create(ctx, &entity.Rating{MovieID: missing, UserID: 1}), utils.ErrNotFound)
	assert.ErrorIs(t, repo.Comment.Create(ctx, &entity.Comment{MovieID: &missing, UserID: 1}), utils.ErrMovieNotFound)
	assert.ErrorIs(t, repo.Reply.Create(ctx, &entity.Reply{CommentID: missing, UserID: 1}), utils.ErrCommentNotFound)
}

func TestFindAllPaginates(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()
	user, _ := seedMovie(t, repo)
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Movie.Create(ctx, &entity.Movie{Title: "m", OwnerID: user.ID}))
	}

	all, err := repo.Movie.FindAll(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	page, err := repo.Movie.FindAll(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)

	empty, err := repo.Movie.FindAll(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()
	user, movie := seedMovie(t, repo)
	failure := errors.New("abort")

	err := repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Movie.Create(ctx, &entity.Movie{Title: "Discarded", OwnerID: user.ID}))

		edited := *movie
		edited.Title = "Edited"
		require.NoError(t, repo.Movie.Update(ctx, &edited))

		require.NoError(t, repo.Rating.Create(ctx, &entity.Rating{MovieID: movie.ID, UserID: user.ID, Value: 4}))
		return failure
	})
	assert.ErrorIs(t, err, failure)

	count, err := repo.Movie.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.Movie.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Movie", got.Title)

	ratings, err := repo.Rating.FindByMovieID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Empty(t, ratings)

	// committed work stays
	err = repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		return repo.Movie.Create(ctx, &entity.Movie{Title: "Kept", OwnerID: user.ID})
	})
	require.NoError(t, err)
	count, err = repo.Movie.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
