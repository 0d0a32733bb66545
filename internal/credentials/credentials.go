// Package credentials turns stored social account rows into usable access
// tokens. It decrypts tokens at rest, checks expiry, and runs the platform's
// refresh flow when one exists.
package credentials

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMissingToken     = errors.New("no access token found for this account")
	ErrDecryptFailed    = errors.New("failed to decrypt access token")
	ErrExpiredNoRefresh = errors.New("token expired, but no refresh token available")
	ErrRefreshFailed    = errors.New("failed to refresh access token")
)

type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

// RefreshStrategy exchanges a refresh token for a fresh token. The refresh
// token passed in is plaintext.
type RefreshStrategy interface {
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}
