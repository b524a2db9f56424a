package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

func TestUserCreateAndLookup(t *testing.T) {
	_, users := newRepos(t)
	ctx := context.Background()

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		Name:         "Alice",
		PasswordHash: "hash",
	}
	require.NoError(t, users.Create(ctx, user))

	byName, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, byName.ID)
	require.Equal(t, "hash", byName.PasswordHash)

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
}

func TestUsernameIsCaseSensitive(t *testing.T) {
	_, users := newRepos(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{
		ID: uuid.NewString(), Username: "alice", PasswordHash: "x",
	}))

	_, err := users.GetByUsername(ctx, "Alice")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserUniqueUsername(t *testing.T) {
	_, users := newRepos(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{
		ID: uuid.NewString(), Username: "alice", PasswordHash: "x",
	}))

	err := users.Create(ctx, &domain.User{
		ID: uuid.NewString(), Username: "alice", PasswordHash: "y",
	})
	require.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestUserNotFound(t *testing.T) {
	_, users := newRepos(t)
	ctx := context.Background()

	_, err := users.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.GetByID(ctx, "no-such-id")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserList(t *testing.T) {
	_, users := newRepos(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{ID: uuid.NewString(), Username: "alice", PasswordHash: "x"}))
	require.NoError(t, users.Create(ctx, &domain.User{ID: uuid.NewString(), Username: "bob", PasswordHash: "y"}))

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
