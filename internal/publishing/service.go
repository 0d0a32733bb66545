// Package publishing coordinates a post's fan-out across the user's
// connected platforms and drives the post's status transitions.
package publishing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/creatorflow/creatorflow-api/internal/credentials"
	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/publisher"
	"github.com/creatorflow/creatorflow-api/internal/repository"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrNoActiveAccounts  = errors.New("no active social accounts connected")
	ErrAlreadyPublishing = errors.New("post is already being published")
	ErrNotScheduled      = errors.New("post is not scheduled")
	ErrPastSchedule      = errors.New("scheduled time must be in the future")
	ErrNotSchedulable    = errors.New("only draft or scheduled posts can be scheduled")
)

const maxConcurrentPublishes = 10

type Service interface {
	PublishPost(ctx context.Context, postID, userID int64) (*transfer.PublishingResult, error)
	PublishScheduledPost(ctx context.Context, postID, userID int64) (*transfer.PublishingResult, error)
	SchedulePost(ctx context.Context, postID, userID int64, scheduledAt time.Time) error
	CancelScheduledPost(ctx context.Context, postID, userID int64) error
}

type publishingService struct {
	posts    repository.PostRepository
	accounts repository.SocialAccountRepository
	media    repository.PostMediaRepository
	history  repository.PostingHistoryRepository
	registry *publisher.Registry
	resolver *credentials.Resolver
	timeout  time.Duration
}

func NewService(
	posts repository.PostRepository,
	accounts repository.SocialAccountRepository,
	media repository.PostMediaRepository,
	history repository.PostingHistoryRepository,
	registry *publisher.Registry,
	resolver *credentials.Resolver,
	timeout time.Duration,
) Service {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &publishingService{
		posts:    posts,
		accounts: accounts,
		media:    media,
		history:  history,
		registry: registry,
		resolver: resolver,
		timeout:  timeout,
	}
}

// PublishPost publishes the post to every active connected account and
// aggregates the per-platform outcomes. The post ends up published when at
// least one platform accepted it, failed otherwise. Orchestration level
// failures (missing post, no accounts) mark the post failed best effort and
// then propagate.
func (s *publishingService) PublishPost(ctx context.Context, postID, userID int64) (*transfer.PublishingResult, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.UserID != userID {
		return nil, ErrPostNotFound
	}

	if post.Status == models.PostStatusScheduled {
		claimed, err := s.posts.ClaimForPublishing(ctx, postID)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, ErrAlreadyPublishing
		}
	} else {
		if err := s.posts.UpdateStatus(ctx, postID, models.PostStatusPublishing); err != nil {
			slog.Info(err.Error())
		}
	}

	return s.publish(ctx, post)
}

// PublishScheduledPost is the queue worker's entry point. It only proceeds
// when it wins the scheduled-to-publishing claim, so a cancelled schedule or
// a concurrent worker makes this a no-op.
func (s *publishingService) PublishScheduledPost(ctx context.Context, postID, userID int64) (*transfer.PublishingResult, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.UserID != userID {
		return nil, ErrPostNotFound
	}

	if post.Status != models.PostStatusScheduled {
		return nil, ErrNotScheduled
	}

	claimed, err := s.posts.ClaimForPublishing(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrAlreadyPublishing
	}

	return s.publish(ctx, post)
}

func (s *publishingService) publish(ctx context.Context, post *models.Post) (*transfer.PublishingResult, error) {
	postID := post.ID
	userID := post.UserID

	accounts, err := s.accounts.ListActiveByUserID(ctx, userID, post.Platforms)
	if err != nil {
		s.markFailed(ctx, postID, err.Error())
		return nil, err
	}
	if len(accounts) == 0 {
		s.markFailed(ctx, postID, ErrNoActiveAccounts.Error())
		return nil, ErrNoActiveAccounts
	}

	mediaURLs, err := s.media.ListURLsByPostID(ctx, postID)
	if err != nil {
		s.markFailed(ctx, postID, err.Error())
		return nil, err
	}

	results := s.fanOut(ctx, post, accounts, mediaURLs)

	s.recordHistory(ctx, post, accounts, results)

	aggregate := s.aggregate(postID, results)
	errorMessage := strings.Join(aggregate.Errors, "; ")
	if aggregate.OverallSuccess {
		// Partial failures survive on the post row even though it publishes.
		if err := s.posts.MarkPublished(ctx, postID, time.Now(), errorMessage); err != nil {
			slog.Info(err.Error())
		}
	} else {
		s.markFailed(ctx, postID, errorMessage)
	}

	return aggregate, nil
}

func (s *publishingService) fanOut(ctx context.Context, post *models.Post, accounts []*models.SocialAccount, mediaURLs []string) []transfer.PlatformResult {
	results := make([]transfer.PlatformResult, len(accounts))
	semaphore := make(chan struct{}, maxConcurrentPublishes)

	var wg sync.WaitGroup
	for i, account := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, account *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[i] = s.publishOne(ctx, post, account, mediaURLs)
		}(i, account)
	}
	wg.Wait()

	return results
}

// publishOne runs a single adapter with a bounded timeout. A panicking
// adapter is contained here and reported as a failed platform result.
func (s *publishingService) publishOne(ctx context.Context, post *models.Post, account *models.SocialAccount, mediaURLs []string) (result transfer.PlatformResult) {
	platform := strings.ToLower(account.Platform)

	defer func() {
		if r := recover(); r != nil {
			slog.Info(fmt.Sprintf("publisher panic on %s: %v", platform, r))
			result = transfer.PlatformResult{
				Platform: platform,
				Success:  false,
				Error:    fmt.Sprintf("internal error: %v", r),
			}
		}
	}()

	pub, ok := s.registry.Lookup(platform)
	if !ok {
		return transfer.PlatformResult{
			Platform: platform,
			Success:  false,
			Error:    "Unsupported platform: " + account.Platform,
		}
	}

	publishCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	accessToken, err := s.resolver.Resolve(publishCtx, account)
	if err != nil {
		return transfer.PlatformResult{
			Platform: platform,
			Success:  false,
			Error:    err.Error(),
		}
	}

	return pub.Publish(publishCtx, accessToken, post, account, mediaURLs)
}

func (s *publishingService) recordHistory(ctx context.Context, post *models.Post, accounts []*models.SocialAccount, results []transfer.PlatformResult) {
	for i, result := range results {
		entry := &models.PostingHistory{
			UserID:         post.UserID,
			PostID:         post.ID,
			AccountID:      accounts[i].ID,
			Platform:       result.Platform,
			PlatformPostID: result.PlatformPostID,
			ErrorMessage:   result.Error,
		}
		if _, err := s.history.Create(ctx, entry); err != nil {
			slog.Info(err.Error())
		}
	}
}

func (s *publishingService) aggregate(postID int64, results []transfer.PlatformResult) *transfer.PublishingResult {
	aggregate := &transfer.PublishingResult{
		PostID:  postID,
		Results: results,
	}
	for _, result := range results {
		if result.Success {
			aggregate.OverallSuccess = true
		} else {
			aggregate.Errors = append(aggregate.Errors, fmt.Sprintf("%s: %s", result.Platform, result.Error))
		}
	}
	return aggregate
}

func (s *publishingService) markFailed(ctx context.Context, postID int64, message string) {
	if err := s.posts.MarkFailed(ctx, postID, message); err != nil {
		slog.Info(err.Error())
	}
}

// SchedulePost moves the post into the scheduled state. Rescheduling an
// already scheduled post just updates the time.
func (s *publishingService) SchedulePost(ctx context.Context, postID, userID int64, scheduledAt time.Time) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.UserID != userID {
		return ErrPostNotFound
	}

	if !scheduledAt.After(time.Now()) {
		return ErrPastSchedule
	}

	// Published and failed posts are terminal; composing again means a new
	// post.
	switch post.Status {
	case models.PostStatusDraft, models.PostStatusScheduled:
	case models.PostStatusPublishing:
		return ErrAlreadyPublishing
	default:
		return ErrNotSchedulable
	}

	return s.posts.Schedule(ctx, postID, scheduledAt)
}

// CancelScheduledPost returns a scheduled post to draft. A post that already
// entered publishing cannot be cancelled.
func (s *publishingService) CancelScheduledPost(ctx context.Context, postID, userID int64) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.UserID != userID {
		return ErrPostNotFound
	}

	if post.Status != models.PostStatusScheduled {
		return ErrNotScheduled
	}

	return s.posts.CancelSchedule(ctx, postID)
}
