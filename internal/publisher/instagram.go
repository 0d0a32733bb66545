package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

// instagramPublisher is a stand-in until the Instagram Content Publishing API
// integration lands. It reports success with a synthetic post id so the rest
// of the pipeline can be exercised end to end.
//
// TODO: replace with the Graph API container/publish flow once the app passes
// Instagram review.
type instagramPublisher struct{}

func NewInstagramPublisher() Publisher {
	return &instagramPublisher{}
}

func (p *instagramPublisher) Platform() string {
	return "instagram"
}

func (p *instagramPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	return success(p.Platform(), fmt.Sprintf("ig_%d", time.Now().UnixMilli()))
}
