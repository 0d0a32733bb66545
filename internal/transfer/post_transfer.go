package transfer

type PostCreation struct {
	Content       string
	Platforms     string
	ScheduledTime string
}

type ScheduleRequest struct {
	PostID        int64  `json:"post_id"`
	ScheduledTime string `json:"scheduled_time"`
}

type CancelRequest struct {
	PostID int64 `json:"post_id"`
}

type PublishRequest struct {
	PostID int64 `json:"post_id"`
}
