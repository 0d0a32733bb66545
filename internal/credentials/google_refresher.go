package credentials

import (
	"context"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleRefresher refreshes Google tokens through the oauth2 package instead
// of a hand-rolled form POST. YouTube accounts use this.
type GoogleRefresher struct {
	ClientID     string
	ClientSecret string
}

func (g *GoogleRefresher) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	conf := &oauth2.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.upload"},
		Endpoint:     google.Endpoint,
	}

	tokenSource := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	token, err := tokenSource.Token()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	result := &Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		result.ExpiresAt = &expiry
	}
	return result, nil
}
