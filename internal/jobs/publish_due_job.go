package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/creatorflow/creatorflow-api/internal/queue"
	"github.com/creatorflow/creatorflow-api/internal/repository"
)

// PublishDueJob scans for scheduled posts whose time has come and pushes
// them onto the task queue. Enqueueing the same post twice is harmless, the
// status claim on the worker side lets only one attempt through.
type PublishDueJob struct {
	pr          repository.PostRepository
	asynqClient *asynq.Client
}

func NewPublishDueJob(pr repository.PostRepository, asynqClient *asynq.Client) *PublishDueJob {
	return &PublishDueJob{
		pr:          pr,
		asynqClient: asynqClient,
	}
}

func (j *PublishDueJob) EnqueueDuePosts() {
	ctx := context.Background()

	posts, err := j.pr.ListDue(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, post := range posts {
		payload := queue.PublishPostPayload{
			PostID: post.ID,
			UserID: post.UserID,
		}
		if err := queue.EnqueuePost(j.asynqClient, payload, 0); err != nil {
			slog.Info(err.Error())
		}
	}
}
