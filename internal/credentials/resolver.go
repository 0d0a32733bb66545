package credentials

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	config "github.com/creatorflow/creatorflow-api/configs"
	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/repository"
	"github.com/creatorflow/creatorflow-api/pkg/utils"
)

const (
	twitterTokenURL   = "https://api.twitter.com/2/oauth2/token"
	linkedinTokenURL  = "https://www.linkedin.com/oauth/v2/accessToken"
	tiktokTokenURL    = "https://open.tiktokapis.com/v2/oauth/token/"
	redditTokenURL    = "https://www.reddit.com/api/v1/access_token"
	pinterestTokenURL = "https://api.pinterest.com/v5/oauth/token"
	vimeoTokenURL     = "https://api.vimeo.com/oauth/access_token"
)

// Resolver resolves a social account row into a plaintext access token.
// Platforms with a registered refresh strategy get refreshed transparently
// when the stored token has expired; the refreshed tokens are written back
// best effort. Platforms without a strategy are flagged needs_reauth on
// expiry.
type Resolver struct {
	sa            repository.SocialAccountRepository
	encryptionKey []byte
	strategies    map[string]RefreshStrategy
}

func NewResolver(cfg *config.Config, sa repository.SocialAccountRepository) *Resolver {
	return &Resolver{
		sa:            sa,
		encryptionKey: []byte(cfg.EncryptionKey),
		strategies: map[string]RefreshStrategy{
			"twitter": &FormRefresher{
				TokenURL:     twitterTokenURL,
				ClientID:     cfg.Twitter.ClientID,
				ClientSecret: cfg.Twitter.ClientSecret,
				BasicAuth:    true,
			},
			"linkedin": &FormRefresher{
				TokenURL:     linkedinTokenURL,
				ClientID:     cfg.LinkedIn.ClientID,
				ClientSecret: cfg.LinkedIn.ClientSecret,
			},
			"tiktok": &FormRefresher{
				TokenURL:      tiktokTokenURL,
				ClientID:      cfg.Tiktok.ClientID,
				ClientSecret:  cfg.Tiktok.ClientSecret,
				ClientIDParam: "client_key",
			},
			"reddit": &FormRefresher{
				TokenURL:     redditTokenURL,
				ClientID:     cfg.Reddit.ClientID,
				ClientSecret: cfg.Reddit.ClientSecret,
				BasicAuth:    true,
			},
			"pinterest": &FormRefresher{
				TokenURL:     pinterestTokenURL,
				ClientID:     cfg.Pinterest.ClientID,
				ClientSecret: cfg.Pinterest.ClientSecret,
				BasicAuth:    true,
			},
			"vimeo": &FormRefresher{
				TokenURL:     vimeoTokenURL,
				ClientID:     cfg.Vimeo.ClientID,
				ClientSecret: cfg.Vimeo.ClientSecret,
				BasicAuth:    true,
			},
			"youtube": &GoogleRefresher{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
			},
		},
	}
}

// SetStrategy registers or replaces the refresh strategy for a platform.
func (r *Resolver) SetStrategy(platform string, strategy RefreshStrategy) {
	r.strategies[strings.ToLower(platform)] = strategy
}

func (r *Resolver) strategyFor(platform string) (RefreshStrategy, bool) {
	strategy, ok := r.strategies[strings.ToLower(platform)]
	return strategy, ok
}

// Resolve returns a usable plaintext access token for the account. Side
// effects on the account row (new tokens, needs_reauth) are written best
// effort and never mask the token error itself.
func (r *Resolver) Resolve(ctx context.Context, account *models.SocialAccount) (string, error) {
	if account.AccessToken == "" {
		return "", ErrMissingToken
	}

	accessToken, err := utils.Decrypt(account.AccessToken, r.encryptionKey)
	if err != nil {
		slog.Info(err.Error())
		return "", ErrDecryptFailed
	}

	if account.TokenExpiresAt == nil || account.TokenExpiresAt.After(time.Now()) {
		return accessToken, nil
	}

	strategy, ok := r.strategyFor(account.Platform)
	if !ok || account.RefreshToken == "" {
		r.markNeedsReauth(ctx, account)
		return "", ErrExpiredNoRefresh
	}

	refreshToken, err := utils.Decrypt(account.RefreshToken, r.encryptionKey)
	if err != nil {
		slog.Info(err.Error())
		return "", ErrDecryptFailed
	}

	token, err := strategy.Refresh(ctx, refreshToken)
	if err != nil {
		slog.Info(err.Error())
		r.markNeedsReauth(ctx, account)
		return "", fmt.Errorf("%w: %s", ErrRefreshFailed, err.Error())
	}

	r.persistTokens(ctx, account, token)

	return token.AccessToken, nil
}

// RefreshIfExpiringWithin refreshes accounts whose token expires inside the
// given window. Accounts without an expiry or without a refresh strategy are
// left alone.
func (r *Resolver) RefreshIfExpiringWithin(ctx context.Context, account *models.SocialAccount, window time.Duration) error {
	if account.TokenExpiresAt == nil || account.TokenExpiresAt.After(time.Now().Add(window)) {
		return nil
	}

	strategy, ok := r.strategyFor(account.Platform)
	if !ok {
		return nil
	}
	if account.RefreshToken == "" {
		return ErrExpiredNoRefresh
	}

	refreshToken, err := utils.Decrypt(account.RefreshToken, r.encryptionKey)
	if err != nil {
		slog.Info(err.Error())
		return ErrDecryptFailed
	}

	token, err := strategy.Refresh(ctx, refreshToken)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("%w: %s", ErrRefreshFailed, err.Error())
	}

	r.persistTokens(ctx, account, token)
	return nil
}

func (r *Resolver) markNeedsReauth(ctx context.Context, account *models.SocialAccount) {
	if err := r.sa.SetStatus(ctx, account.ID, models.AccountStatusNeedsReauth); err != nil {
		slog.Info(err.Error())
	}
}

func (r *Resolver) persistTokens(ctx context.Context, account *models.SocialAccount, token *Token) {
	encryptedAccess, err := utils.Encrypt([]byte(token.AccessToken), r.encryptionKey)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var encryptedRefresh string
	if token.RefreshToken != "" {
		encryptedRefresh, err = utils.Encrypt([]byte(token.RefreshToken), r.encryptionKey)
		if err != nil {
			slog.Info(err.Error())
			return
		}
	}

	if err := r.sa.SetTokens(ctx, account.ID, encryptedAccess, encryptedRefresh, token.ExpiresAt); err != nil {
		slog.Info(err.Error())
	}
}
