package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/hibiken/asynq"

	"github.com/creatorflow/creatorflow-api/internal/publishing"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	result, err := q.ps.PublishScheduledPost(ctx, payload.PostID, payload.UserID)
	if err != nil {
		// A lost claim or a cancelled schedule makes this task a no-op, not
		// a retry.
		if errors.Is(err, publishing.ErrAlreadyPublishing) || errors.Is(err, publishing.ErrNotScheduled) {
			log.Printf("Post %d no longer due, skipping", payload.PostID)
			return nil
		}
		log.Printf("Error publishing PostID %d: %v", payload.PostID, err)
		return err
	}

	log.Printf("Published PostID %d: success=%v results=%d", payload.PostID, result.OverallSuccess, len(result.Results))
	return nil
}
