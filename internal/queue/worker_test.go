package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"

	"github.com/creatorflow/creatorflow-api/internal/publishing"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type stubPublishingService struct {
	result *transfer.PublishingResult
	err    error
	calls  int
	postID int64
	userID int64
}

func (s *stubPublishingService) PublishPost(ctx context.Context, postID, userID int64) (*transfer.PublishingResult, error) {
	return s.result, s.err
}

func (s *stubPublishingService) PublishScheduledPost(ctx context.Context, postID, userID int64) (*transfer.PublishingResult, error) {
	s.calls++
	s.postID = postID
	s.userID = userID
	return s.result, s.err
}

func (s *stubPublishingService) SchedulePost(ctx context.Context, postID, userID int64, scheduledAt time.Time) error {
	return s.err
}

func (s *stubPublishingService) CancelScheduledPost(ctx context.Context, postID, userID int64) error {
	return s.err
}

func publishTask(t *testing.T, postID, userID int64) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(PublishPostPayload{PostID: postID, UserID: userID})
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(TaskTypePublishPost, payload)
}

func TestHandlePublishPostTask(t *testing.T) {
	svc := &stubPublishingService{result: &transfer.PublishingResult{PostID: 4, OverallSuccess: true}}
	q := NewQueue(svc)

	if err := q.HandlePublishPostTask(context.Background(), publishTask(t, 4, 8)); err != nil {
		t.Fatal(err)
	}
	if svc.calls != 1 {
		t.Errorf("Expected 1 publish call, got %d", svc.calls)
	}
	if svc.postID != 4 || svc.userID != 8 {
		t.Errorf("Expected post 4 user 8, got post %d user %d", svc.postID, svc.userID)
	}
}

func TestHandlePublishPostTaskSkipsStaleTasks(t *testing.T) {
	for _, err := range []error{publishing.ErrAlreadyPublishing, publishing.ErrNotScheduled} {
		q := NewQueue(&stubPublishingService{err: err})

		if got := q.HandlePublishPostTask(context.Background(), publishTask(t, 1, 1)); got != nil {
			t.Errorf("Expected %v to be swallowed without retry, got %v", err, got)
		}
	}
}

func TestHandlePublishPostTaskPropagatesFailures(t *testing.T) {
	want := errors.New("db down")
	q := NewQueue(&stubPublishingService{err: want})

	if got := q.HandlePublishPostTask(context.Background(), publishTask(t, 1, 1)); got != want {
		t.Errorf("Expected error to propagate for retry, got %v", got)
	}
}

func TestHandlePublishPostTaskBadPayload(t *testing.T) {
	q := NewQueue(&stubPublishingService{})

	task := asynq.NewTask(TaskTypePublishPost, []byte("not json"))
	if err := q.HandlePublishPostTask(context.Background(), task); err == nil {
		t.Error("Expected error for malformed payload")
	}
}
