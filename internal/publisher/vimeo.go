package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

// vimeoPublisher uses the pull upload approach, so Vimeo fetches the video
// from its public URL instead of the bytes moving through this process.
type vimeoPublisher struct {
	client  *http.Client
	baseURL string
}

func NewVimeoPublisher(client *http.Client) Publisher {
	return &vimeoPublisher{
		client:  client,
		baseURL: "https://api.vimeo.com",
	}
}

func (p *vimeoPublisher) Platform() string {
	return "vimeo"
}

func (p *vimeoPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	if len(mediaURLs) == 0 {
		return failure(p.Platform(), "Vimeo requires video content for posting")
	}

	name := truncate(post.Content, 128)
	if name == "" {
		name = "CreatorFlow Video"
	}

	videoReq := transfer.VimeoVideoRequest{
		Upload: transfer.VimeoUpload{
			Approach: "pull",
			Link:     mediaURLs[0],
		},
		Name:        name,
		Description: post.Content,
		Privacy:     transfer.VimeoPrivacy{View: "anybody"},
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/me/videos", videoReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.vimeo.*+json;version=3.4")

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var videoResp transfer.VimeoVideoResponse
	if err := json.NewDecoder(resp.Body).Decode(&videoResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if videoResp.URI == "" {
		msg := videoResp.Error
		if msg == "" {
			msg = "video creation failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	parts := strings.Split(videoResp.URI, "/")
	return success(p.Platform(), parts[len(parts)-1])
}
