// Package publisher contains one adapter per supported social platform. Each
// adapter takes an already-resolved access token and turns a post into a
// platform API call, reporting the outcome as a PlatformResult rather than an
// error so one bad platform never aborts the others.
package publisher

import (
	"context"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type Publisher interface {
	Platform() string
	Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult
}

func success(platform, postID string) transfer.PlatformResult {
	return transfer.PlatformResult{
		Platform:       platform,
		Success:        true,
		PlatformPostID: postID,
	}
}

func failure(platform, message string) transfer.PlatformResult {
	return transfer.PlatformResult{
		Platform: platform,
		Success:  false,
		Error:    message,
	}
}
