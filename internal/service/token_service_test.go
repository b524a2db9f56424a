package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bloglist/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	user := &domain.User{ID: "u1", Username: "alice"}

	token, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "u1", identity.UserID)
	require.Equal(t, "alice", identity.Username)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret", time.Hour).Issue(&domain.User{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenMalformed(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(garbage)
		require.ErrorIs(t, err, ErrTokenInvalid)
	}
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenService("secret", -time.Minute)

	token, err := tokens.Issue(&domain.User{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
