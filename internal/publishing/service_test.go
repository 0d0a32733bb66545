package publishing

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	config "github.com/creatorflow/creatorflow-api/configs"
	"github.com/creatorflow/creatorflow-api/internal/credentials"
	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/publisher"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
	"github.com/creatorflow/creatorflow-api/pkg/utils"
)

const testEncryptionKey = "0123456789abcdef0123456789abcdef"

type mockPostRepo struct {
	posts         map[int64]*models.Post
	claimResult      bool
	claimCalls       int
	publishedID      int64
	publishedMessage string
	failedID         int64
	failedMessage    string
	scheduledAt   *time.Time
	cancelled     bool
}

func newMockPostRepo(posts ...*models.Post) *mockPostRepo {
	m := &mockPostRepo{posts: make(map[int64]*models.Post), claimResult: true}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return m.posts[id], nil
}

func (m *mockPostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	return 0, nil
}

func (m *mockPostRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	return nil, nil
}

func (m *mockPostRepo) UpdateStatus(ctx context.Context, postID int64, status string) error {
	if p, ok := m.posts[postID]; ok {
		p.Status = status
	}
	return nil
}

func (m *mockPostRepo) MarkPublished(ctx context.Context, postID int64, publishedAt time.Time, errorMessage string) error {
	m.publishedID = postID
	m.publishedMessage = errorMessage
	if p, ok := m.posts[postID]; ok {
		p.Status = models.PostStatusPublished
	}
	return nil
}

func (m *mockPostRepo) MarkFailed(ctx context.Context, postID int64, errorMessage string) error {
	m.failedID = postID
	m.failedMessage = errorMessage
	if p, ok := m.posts[postID]; ok {
		p.Status = models.PostStatusFailed
	}
	return nil
}

func (m *mockPostRepo) Schedule(ctx context.Context, postID int64, scheduledAt time.Time) error {
	m.scheduledAt = &scheduledAt
	return nil
}

func (m *mockPostRepo) CancelSchedule(ctx context.Context, postID int64) error {
	m.cancelled = true
	return nil
}

func (m *mockPostRepo) ClaimForPublishing(ctx context.Context, postID int64) (bool, error) {
	m.claimCalls++
	return m.claimResult, nil
}

func (m *mockPostRepo) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	return nil, nil
}

func (m *mockPostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	return false, nil
}

func (m *mockPostRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

type mockAccountRepo struct {
	accounts []*models.SocialAccount
	statuses map[int64]string
}

func newMockAccountRepo(accounts ...*models.SocialAccount) *mockAccountRepo {
	return &mockAccountRepo{accounts: accounts, statuses: make(map[int64]string)}
}

func (m *mockAccountRepo) Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	return 0, nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	return nil, nil
}

func (m *mockAccountRepo) ListActiveByUserID(ctx context.Context, userID int64, platforms []string) ([]*models.SocialAccount, error) {
	var result []*models.SocialAccount
	for _, acc := range m.accounts {
		if acc.UserID != userID || acc.AccountStatus != models.AccountStatusActive {
			continue
		}
		if len(platforms) > 0 && !containsPlatform(platforms, acc.Platform) {
			continue
		}
		result = append(result, acc)
	}
	return result, nil
}

func containsPlatform(platforms []string, platform string) bool {
	for _, p := range platforms {
		if p == platform {
			return true
		}
	}
	return false
}

func (m *mockAccountRepo) ListInfoByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	return nil, nil
}

func (m *mockAccountRepo) ListByTimeInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.SocialAccount, error) {
	return nil, nil
}

func (m *mockAccountRepo) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	return false, nil
}

func (m *mockAccountRepo) SetTokens(ctx context.Context, accountID int64, accessToken, refreshToken string, expiresAt *time.Time) error {
	return nil
}

func (m *mockAccountRepo) SetStatus(ctx context.Context, accountID int64, status string) error {
	m.statuses[accountID] = status
	return nil
}

func (m *mockAccountRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

type mockMediaRepo struct {
	urls []string
}

func (m *mockMediaRepo) Create(ctx context.Context, tx *sql.Tx, pm *models.PostMedia) error {
	return nil
}

func (m *mockMediaRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.PostMedia, error) {
	return nil, nil
}

func (m *mockMediaRepo) ListURLsByPostID(ctx context.Context, postID int64) ([]string, error) {
	return m.urls, nil
}

func (m *mockMediaRepo) Remove(ctx context.Context, postID int64) error {
	return nil
}

type mockHistoryRepo struct {
	entries []*models.PostingHistory
}

func (m *mockHistoryRepo) Create(ctx context.Context, ph *models.PostingHistory) (int64, error) {
	m.entries = append(m.entries, ph)
	return int64(len(m.entries)), nil
}

func (m *mockHistoryRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.PostingHistory, error) {
	return m.entries, nil
}

func (m *mockHistoryRepo) GetByPostID(ctx context.Context, postID int64) ([]*models.PostingHistory, error) {
	return m.entries, nil
}

type stubPublisher struct {
	name string
	fn   func(ctx context.Context) transfer.PlatformResult
}

func (s *stubPublisher) Platform() string {
	return s.name
}

func (s *stubPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	return s.fn(ctx)
}

func okPublisher(name string) publisher.Publisher {
	return &stubPublisher{name: name, fn: func(ctx context.Context) transfer.PlatformResult {
		return transfer.PlatformResult{Platform: name, Success: true, PlatformPostID: name + "_1"}
	}}
}

func failPublisher(name, message string) publisher.Publisher {
	return &stubPublisher{name: name, fn: func(ctx context.Context) transfer.PlatformResult {
		return transfer.PlatformResult{Platform: name, Success: false, Error: message}
	}}
}

func panicPublisher(name string) publisher.Publisher {
	return &stubPublisher{name: name, fn: func(ctx context.Context) transfer.PlatformResult {
		panic("nil response")
	}}
}

func blockingPublisher(name string) publisher.Publisher {
	return &stubPublisher{name: name, fn: func(ctx context.Context) transfer.PlatformResult {
		<-ctx.Done()
		return transfer.PlatformResult{Platform: name, Success: false, Error: ctx.Err().Error()}
	}}
}

func testAccount(id int64, platform string, t *testing.T) *models.SocialAccount {
	t.Helper()
	encrypted, err := utils.Encrypt([]byte("token-"+platform), []byte(testEncryptionKey))
	if err != nil {
		t.Fatal(err)
	}
	return &models.SocialAccount{
		ID:            id,
		UserID:        1,
		Platform:      platform,
		AccountID:     "acc-" + platform,
		AccessToken:   encrypted,
		AccountStatus: models.AccountStatusActive,
	}
}

func testResolver(accounts *mockAccountRepo) *credentials.Resolver {
	cfg := &config.Config{EncryptionKey: testEncryptionKey}
	return credentials.NewResolver(cfg, accounts)
}

func newTestService(posts *mockPostRepo, accounts *mockAccountRepo, history *mockHistoryRepo, registry *publisher.Registry) Service {
	return NewService(posts, accounts, &mockMediaRepo{}, history, registry, testResolver(accounts), time.Second)
}

func TestPublishPostAggregatesMixedResults(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	accounts := newMockAccountRepo(testAccount(1, "good", t), testAccount(2, "bad", t))
	history := &mockHistoryRepo{}

	registry := publisher.NewRegistry()
	registry.Register(okPublisher("good"))
	registry.Register(failPublisher("bad", "boom"))

	svc := newTestService(posts, accounts, history, registry)

	result, err := svc.PublishPost(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !result.OverallSuccess {
		t.Error("Expected overall success when one platform succeeded")
	}
	if len(result.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(result.Results))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0] != "bad: boom" {
		t.Errorf("Expected error 'bad: boom', got '%s'", result.Errors[0])
	}
	if posts.publishedID != 1 {
		t.Error("Expected post to be marked published")
	}
	if posts.publishedMessage != "bad: boom" {
		t.Errorf("Expected partial failure persisted as 'bad: boom', got '%s'", posts.publishedMessage)
	}
	if len(history.entries) != 2 {
		t.Errorf("Expected 2 history entries, got %d", len(history.entries))
	}
}

func TestPublishPostFullSuccessClearsErrorMessage(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	accounts := newMockAccountRepo(testAccount(1, "good", t))

	registry := publisher.NewRegistry()
	registry.Register(okPublisher("good"))

	svc := newTestService(posts, accounts, &mockHistoryRepo{}, registry)

	result, err := svc.PublishPost(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !result.OverallSuccess {
		t.Fatal("Expected success")
	}
	if posts.publishedMessage != "" {
		t.Errorf("Expected no error message on clean publish, got '%s'", posts.publishedMessage)
	}
}

func TestPublishPostAllFailuresMarksFailed(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	accounts := newMockAccountRepo(testAccount(1, "first", t), testAccount(2, "second", t))

	registry := publisher.NewRegistry()
	registry.Register(failPublisher("first", "rate limited"))
	registry.Register(failPublisher("second", "invalid token"))

	svc := newTestService(posts, accounts, &mockHistoryRepo{}, registry)

	result, err := svc.PublishPost(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if result.OverallSuccess {
		t.Error("Expected overall failure when every platform failed")
	}
	if posts.failedID != 1 {
		t.Fatal("Expected post to be marked failed")
	}
	if !strings.Contains(posts.failedMessage, "first: rate limited") {
		t.Errorf("Expected aggregated message to contain 'first: rate limited', got '%s'", posts.failedMessage)
	}
	if !strings.Contains(posts.failedMessage, "; ") {
		t.Errorf("Expected errors joined with '; ', got '%s'", posts.failedMessage)
	}
}

func TestPublishPostUnsupportedPlatform(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	accounts := newMockAccountRepo(testAccount(1, "myspace", t))

	svc := newTestService(posts, accounts, &mockHistoryRepo{}, publisher.NewRegistry())

	result, err := svc.PublishPost(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if result.OverallSuccess {
		t.Error("Expected failure for unsupported platform")
	}
	if len(result.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(result.Results))
	}
	if result.Results[0].Error != "Unsupported platform: myspace" {
		t.Errorf("Expected unsupported platform error, got '%s'", result.Results[0].Error)
	}
}

func TestPublishPostAliasRoutesToTarget(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	accounts := newMockAccountRepo(testAccount(1, "threads", t))

	registry := publisher.NewRegistry()
	registry.Register(okPublisher("instagram"))
	registry.Alias("threads", "instagram")

	svc := newTestService(posts, accounts, &mockHistoryRepo{}, registry)

	result, err := svc.PublishPost(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !result.OverallSuccess {
		t.Errorf("Expected threads to publish through instagram, got %+v", result.Results)
	}
}

func TestPublishPostRecoversAdapterPanic(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	accounts := newMockAccountRepo(testAccount(1, "flaky", t), testAccount(2, "good", t))

	registry := publisher.NewRegistry()
	registry.Register(panicPublisher("flaky"))
	registry.Register(okPublisher("good"))

	svc := newTestService(posts, accounts, &mockHistoryRepo{}, registry)

	result, err := svc.PublishPost(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !result.OverallSuccess {
		t.Error("Expected panic in one adapter not to sink the others")
	}
	var flaky transfer.PlatformResult
	for _, r := range result.Results {
		if r.Platform == "flaky" {
			flaky = r
		}
	}
	if flaky.Success {
		t.Error("Expected panicking adapter to report failure")
	}
	if !strings.Contains(flaky.Error, "internal error") {
		t.Errorf("Expected internal error message, got '%s'", flaky.Error)
	}
}

func TestPublishPostTimesOutSlowAdapter(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	accounts := newMockAccountRepo(testAccount(1, "slow", t))

	registry := publisher.NewRegistry()
	registry.Register(blockingPublisher("slow"))

	svc := NewService(posts, accounts, &mockMediaRepo{}, &mockHistoryRepo{}, registry, testResolver(accounts), 20*time.Millisecond)

	done := make(chan struct{})
	var result *transfer.PublishingResult
	go func() {
		result, _ = svc.PublishPost(context.Background(), 1, 1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish did not return within the timeout bound")
	}

	if result.OverallSuccess {
		t.Error("Expected timed out adapter to count as failure")
	}
}

func TestPublishPostNotFound(t *testing.T) {
	svc := newTestService(newMockPostRepo(), newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	if _, err := svc.PublishPost(context.Background(), 99, 1); err != ErrPostNotFound {
		t.Errorf("Expected ErrPostNotFound, got %v", err)
	}
}

func TestPublishPostWrongOwner(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 2, Content: "hello", Status: models.PostStatusDraft})
	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	if _, err := svc.PublishPost(context.Background(), 1, 1); err != ErrPostNotFound {
		t.Errorf("Expected ErrPostNotFound for foreign post, got %v", err)
	}
}

func TestPublishPostNoAccountsMarksFailed(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	if _, err := svc.PublishPost(context.Background(), 1, 1); err != ErrNoActiveAccounts {
		t.Errorf("Expected ErrNoActiveAccounts, got %v", err)
	}
	if posts.failedID != 1 {
		t.Error("Expected post marked failed before the error propagated")
	}
}

func TestPublishPostRestrictsToSelectedPlatforms(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Platforms: []string{"good"}, Status: models.PostStatusDraft})
	accounts := newMockAccountRepo(testAccount(1, "good", t), testAccount(2, "other", t))

	registry := publisher.NewRegistry()
	registry.Register(okPublisher("good"))
	registry.Register(okPublisher("other"))

	svc := newTestService(posts, accounts, &mockHistoryRepo{}, registry)

	result, err := svc.PublishPost(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results) != 1 {
		t.Fatalf("Expected publish restricted to 1 platform, got %d results", len(result.Results))
	}
	if result.Results[0].Platform != "good" {
		t.Errorf("Expected publish on 'good', got '%s'", result.Results[0].Platform)
	}
}

func TestPublishScheduledPostLosesClaim(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusScheduled})
	posts.claimResult = false

	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	if _, err := svc.PublishScheduledPost(context.Background(), 1, 1); err != ErrAlreadyPublishing {
		t.Errorf("Expected ErrAlreadyPublishing on lost claim, got %v", err)
	}
	if posts.claimCalls != 1 {
		t.Errorf("Expected exactly one claim attempt, got %d", posts.claimCalls)
	}
}

func TestPublishScheduledPostSkipsCancelled(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})

	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	if _, err := svc.PublishScheduledPost(context.Background(), 1, 1); err != ErrNotScheduled {
		t.Errorf("Expected ErrNotScheduled for a draft, got %v", err)
	}
}

func TestSchedulePostRejectsPastTime(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	err := svc.SchedulePost(context.Background(), 1, 1, time.Now().Add(-time.Hour))
	if err != ErrPastSchedule {
		t.Errorf("Expected ErrPastSchedule, got %v", err)
	}
}

func TestSchedulePostSetsTime(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusDraft})
	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	when := time.Now().Add(time.Hour)
	if err := svc.SchedulePost(context.Background(), 1, 1, when); err != nil {
		t.Fatal(err)
	}
	if posts.scheduledAt == nil || !posts.scheduledAt.Equal(when) {
		t.Error("Expected scheduled time to be stored")
	}
}

func TestSchedulePostRejectsTerminalStates(t *testing.T) {
	for _, status := range []string{models.PostStatusPublished, models.PostStatusFailed} {
		posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: status})
		svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

		err := svc.SchedulePost(context.Background(), 1, 1, time.Now().Add(time.Hour))
		if err != ErrNotSchedulable {
			t.Errorf("Expected ErrNotSchedulable for %s post, got %v", status, err)
		}
		if posts.scheduledAt != nil {
			t.Errorf("Expected no schedule written for %s post", status)
		}
	}
}

func TestSchedulePostRejectsWhilePublishing(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusPublishing})
	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	err := svc.SchedulePost(context.Background(), 1, 1, time.Now().Add(time.Hour))
	if err != ErrAlreadyPublishing {
		t.Errorf("Expected ErrAlreadyPublishing, got %v", err)
	}
}

func TestCancelScheduledPost(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusScheduled})
	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	if err := svc.CancelScheduledPost(context.Background(), 1, 1); err != nil {
		t.Fatal(err)
	}
	if !posts.cancelled {
		t.Error("Expected schedule to be cancelled")
	}
}

func TestCancelRequiresScheduledState(t *testing.T) {
	posts := newMockPostRepo(&models.Post{ID: 1, UserID: 1, Content: "hello", Status: models.PostStatusPublished})
	svc := newTestService(posts, newMockAccountRepo(), &mockHistoryRepo{}, publisher.NewRegistry())

	if err := svc.CancelScheduledPost(context.Background(), 1, 1); err != ErrNotScheduled {
		t.Errorf("Expected ErrNotScheduled, got %v", err)
	}
}
