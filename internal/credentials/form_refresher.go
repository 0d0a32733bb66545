package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

// FormRefresher implements the common OAuth2 refresh_token grant over a
// form-encoded POST. BasicAuth selects whether the client credentials go in
// an Authorization header or in the form body. ClientIDParam covers TikTok,
// which calls the parameter client_key.
type FormRefresher struct {
	TokenURL      string
	ClientID      string
	ClientSecret  string
	ClientIDParam string
	BasicAuth     bool
	Client        *http.Client
}

func (f *FormRefresher) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	idParam := f.ClientIDParam
	if idParam == "" {
		idParam = "client_id"
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set(idParam, f.ClientID)
	if !f.BasicAuth {
		form.Set("client_secret", f.ClientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if f.BasicAuth {
		req.SetBasicAuth(f.ClientID, f.ClientSecret)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var tokenResp transfer.OAuthTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if resp.StatusCode != http.StatusOK || tokenResp.AccessToken == "" {
		msg := tokenResp.ErrorDescription
		if msg == "" {
			msg = tokenResp.Error
		}
		if msg == "" {
			msg = "token endpoint returned status " + resp.Status
		}
		slog.Info(msg)
		return nil, errors.New(msg)
	}

	token := &Token{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
	}
	if tokenResp.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
		token.ExpiresAt = &expiresAt
	}
	return token, nil
}
