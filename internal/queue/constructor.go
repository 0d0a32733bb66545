package queue

import (
	"github.com/creatorflow/creatorflow-api/internal/publishing"
)

type Queue struct {
	ps publishing.Service
}

func NewQueue(ps publishing.Service) *Queue {
	return &Queue{ps: ps}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
	UserID int64 `json:"user_id"`
}
