package models

import "time"

type Post struct {
	ID           int64      `db:"id" json:"id"`
	UserID       int64      `db:"user_id" json:"user_id"`
	Content      string     `db:"content" json:"content"`
	Platforms    []string   `db:"platforms" json:"platforms"`
	Status       string     `db:"status" json:"status"`
	ScheduledAt  *time.Time `db:"scheduled_at" json:"scheduled_at"`
	PublishedAt  *time.Time `db:"published_at" json:"published_at"`
	ErrorMessage string     `db:"error_message" json:"error_message"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type MediaAsset struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	FileName     string    `db:"file_name"`
	FileType     string    `db:"file_type"`
	FileSize     int64     `db:"file_size"`
	FileURL      string    `db:"file_url"`
	ThumbnailURL string    `db:"thumbnail_url"`
	CreatedAt    time.Time `db:"created_at"`
}

type PostMedia struct {
	PostID       int64     `db:"post_id"`
	AssetID      int64     `db:"asset_id"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	PostStatusDraft      = "draft"
	PostStatusScheduled  = "scheduled"
	PostStatusPublishing = "publishing"
	PostStatusPublished  = "published"
	PostStatusFailed     = "failed"
)
