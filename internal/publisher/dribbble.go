package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type dribbblePublisher struct {
	client  *http.Client
	baseURL string
}

func NewDribbblePublisher(client *http.Client) Publisher {
	return &dribbblePublisher{
		client:  client,
		baseURL: "https://api.dribbble.com/v2",
	}
}

func (p *dribbblePublisher) Platform() string {
	return "dribbble"
}

func (p *dribbblePublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	if len(mediaURLs) == 0 {
		return failure(p.Platform(), "Dribbble requires at least one image for a shot")
	}

	title := truncate(post.Content, 100)
	if title == "" {
		title = "CreatorFlow Shot"
	}

	shotReq := transfer.DribbbleShotRequest{
		Title:       title,
		Description: post.Content,
		Image:       mediaURLs[0],
		Published:   true,
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/shots", shotReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var shotResp transfer.DribbbleShotResponse
	if err := json.NewDecoder(resp.Body).Decode(&shotResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if shotResp.ID == 0 {
		msg := shotResp.Message
		if msg == "" {
			msg = "shot creation failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), strconv.FormatInt(shotResp.ID, 10))
}
