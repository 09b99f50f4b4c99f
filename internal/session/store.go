// Package session persists the signed-in user's token pair.
package session

import (
	"context"
	"errors"
)

// Credentials is the access/refresh token pair identifying the signed-in
// user. Created on login, rotated in place when a response carries a fresh
// access token, destroyed on logout.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

var ErrNoSession = errors.New("session: no stored credentials")

// Store persists the credential pair. Discipline is last-write-wins: no
// versioning, no transactions. Rotation responses are assumed to carry
// monotonically newer tokens, so the freshest write is the freshest token.
type Store interface {
	Credentials(ctx context.Context) (Credentials, error)
	SetCredentials(ctx context.Context, creds Credentials) error
	// UpdateAccessToken rotates only the access half, keeping the refresh
	// token as stored.
	UpdateAccessToken(ctx context.Context, accessToken string) error
	Clear(ctx context.Context) error
}
