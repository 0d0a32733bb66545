package transfer

// PlatformResult is the outcome of one publish attempt against one platform
// account. It is produced per attempt and folded into the post's aggregate
// error message, never persisted on its own.
type PlatformResult struct {
	Platform       string `json:"platform"`
	Success        bool   `json:"success"`
	PlatformPostID string `json:"platform_post_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

// PublishingResult aggregates the per-account outcomes of one publish run.
// OverallSuccess is true iff at least one platform succeeded.
type PublishingResult struct {
	PostID         int64            `json:"post_id"`
	Results        []PlatformResult `json:"results"`
	OverallSuccess bool             `json:"overall_success"`
	Errors         []string         `json:"errors"`
}
