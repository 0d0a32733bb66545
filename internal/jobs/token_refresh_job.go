package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/creatorflow/creatorflow-api/internal/credentials"
	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/repository"
)

type TokenRefreshJob struct {
	sr       repository.SocialAccountRepository
	resolver *credentials.Resolver
}

func NewTokenRefreshJob(sr repository.SocialAccountRepository, resolver *credentials.Resolver) *TokenRefreshJob {
	return &TokenRefreshJob{
		sr:       sr,
		resolver: resolver,
	}
}

// RefreshTokens proactively resolves accounts whose tokens expire within the
// next half hour. Resolving runs the refresh flow and persists the new
// tokens, so publishes later on see fresh credentials.
func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	accounts, err := c.sr.ListByTimeInterval(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := c.resolver.RefreshIfExpiringWithin(ctx, acc, 30*time.Minute); err != nil {
				slog.Info("Unable to refresh tokens for " + acc.Platform)
			}
		}(acc)
	}

	wg.Wait()
}
