package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Credentials(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	creds := Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, store.SetCredentials(ctx, creds))

	got, err := store.Credentials(ctx)
	require.NoError(t, err)
	require.Equal(t, creds, got)

	// Rotation touches only the access half.
	require.NoError(t, store.UpdateAccessToken(ctx, "access-2"))
	got, err = store.Credentials(ctx)
	require.NoError(t, err)
	require.Equal(t, "access-2", got.AccessToken)
	require.Equal(t, "refresh-1", got.RefreshToken)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Credentials(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.SetCredentials(ctx, Credentials{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, store.SetCredentials(ctx, Credentials{AccessToken: "a2", RefreshToken: "r2"}))

	got, err := store.Credentials(ctx)
	require.NoError(t, err)
	require.Equal(t, "a2", got.AccessToken)
	require.Equal(t, "r2", got.RefreshToken)
}

func TestInspectReadsClaims(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "42",
		"email": "bidder@doran.vn",
		"exp":   expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("remote-only-secret"))
	require.NoError(t, err)

	info, err := Inspect(signed)
	require.NoError(t, err)
	require.Equal(t, "42", info.Subject)
	require.Equal(t, "bidder@doran.vn", info.Email)
	require.Equal(t, expiry.Unix(), info.ExpiresAt.Unix())
	require.False(t, info.Expired(time.Now()))
	require.True(t, info.Expired(expiry.Add(time.Minute)))
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	require.Error(t, err)
}
