package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
	"bloglist/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newBlogService(t *testing.T) BlogService {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := sqlite.NewUserRepository(db)
	blogRepo := sqlite.NewBlogRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, blogRepo.Init(ctx))

	return NewBlogService(blogRepo)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateBlogValidation(t *testing.T) {
	blogs := newBlogService(t)
	ctx := context.Background()

	_, err := blogs.Create(ctx, BlogInput{Author: "Nobody"}, "")
	require.True(t, IsValidation(err))

	_, err = blogs.Create(ctx, BlogInput{Title: "T", URL: "u.com", Likes: -1}, "")
	require.True(t, IsValidation(err))

	// either title or url alone is enough
	_, err = blogs.Create(ctx, BlogInput{Title: "OnlyTitle"}, "")
	require.NoError(t, err)
	_, err = blogs.Create(ctx, BlogInput{URL: "only-url.com"}, "")
	require.NoError(t, err)
}

func TestPartialUpdateKeepsUnsetFields(t *testing.T) {
	blogs := newBlogService(t)
	ctx := context.Background()

	created, err := blogs.Create(ctx, BlogInput{Title: "T", Author: "A", URL: "u.com", Likes: 5}, "")
	require.NoError(t, err)

	updated, err := blogs.Update(ctx, created.ID, domain.BlogPatch{Likes: intPtr(9)})
	require.NoError(t, err)
	require.Equal(t, 9, updated.Likes)
	require.Equal(t, "T", updated.Title)
	require.Equal(t, "A", updated.Author)
	require.Equal(t, "u.com", updated.URL)

	updated, err = blogs.Update(ctx, created.ID, domain.BlogPatch{Title: strPtr("T2"), URL: strPtr("u2.com")})
	require.NoError(t, err)
	require.Equal(t, "T2", updated.Title)
	require.Equal(t, "u2.com", updated.URL)
	require.Equal(t, 9, updated.Likes)
	require.Equal(t, created.ID, updated.ID)
}

func TestUpdateEmptyPatchIsNoop(t *testing.T) {
	blogs := newBlogService(t)
	ctx := context.Background()

	created, err := blogs.Create(ctx, BlogInput{Title: "T", URL: "u.com", Likes: 1}, "")
	require.NoError(t, err)

	updated, err := blogs.Update(ctx, created.ID, domain.BlogPatch{})
	require.NoError(t, err)
	require.Equal(t, created.Title, updated.Title)
	require.Equal(t, created.Likes, updated.Likes)
}

func TestUpdateUnknownID(t *testing.T) {
	blogs := newBlogService(t)

	_, err := blogs.Update(context.Background(), "no-such-id", domain.BlogPatch{Likes: intPtr(1)})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	blogs := newBlogService(t)
	ctx := context.Background()

	created, err := blogs.Create(ctx, BlogInput{Title: "T", URL: "u.com"}, "owner-1")
	require.NoError(t, err)

	err = blogs.Delete(ctx, created.ID, "someone-else")
	require.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, blogs.Delete(ctx, created.ID, "owner-1"))

	err = blogs.Delete(ctx, created.ID, "owner-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteUnownedBlog(t *testing.T) {
	blogs := newBlogService(t)
	ctx := context.Background()

	// legacy records without an owner are removable by any authenticated caller
	created, err := blogs.Create(ctx, BlogInput{Title: "Legacy", URL: "legacy.com"}, "")
	require.NoError(t, err)
	require.NoError(t, blogs.Delete(ctx, created.ID, "anyone"))
}

func TestStats(t *testing.T) {
	blogs := newBlogService(t)
	ctx := context.Background()

	stats, err := blogs.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, stats.Blogs)
	require.Equal(t, 0, stats.TotalLikes)
	require.Nil(t, stats.Favorite)
	require.Nil(t, stats.TopAuthor)

	seed := []BlogInput{
		{Title: "B1", Author: "Ann", URL: "b1.com", Likes: 7},
		{Title: "B2", Author: "Ben", URL: "b2.com", Likes: 12},
		{Title: "B3", Author: "Ann", URL: "b3.com", Likes: 3},
	}
	for _, input := range seed {
		_, err := blogs.Create(ctx, input, "")
		require.NoError(t, err)
	}

	stats, err = blogs.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Blogs)
	require.Equal(t, 22, stats.TotalLikes)
	require.Equal(t, "B2", stats.Favorite.Title)
	require.Equal(t, 12, stats.Favorite.Likes)
	require.Equal(t, "Ann", stats.TopAuthor.Author)
	require.Equal(t, 2, stats.TopAuthor.Blogs)
}
