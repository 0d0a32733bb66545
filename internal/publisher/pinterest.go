package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type pinterestPublisher struct {
	client  *http.Client
	baseURL string
}

func NewPinterestPublisher(client *http.Client) Publisher {
	return &pinterestPublisher{
		client:  client,
		baseURL: "https://api.pinterest.com/v5",
	}
}

func (p *pinterestPublisher) Platform() string {
	return "pinterest"
}

func (p *pinterestPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	if len(mediaURLs) == 0 {
		return failure(p.Platform(), "Pinterest requires at least one image for a pin")
	}

	boardID, err := p.firstBoard(ctx, accessToken)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	title := truncate(post.Content, 100)
	if title == "" {
		title = "CreatorFlow Pin"
	}

	pinReq := transfer.PinterestPinRequest{
		BoardID:     boardID,
		Title:       title,
		Description: post.Content,
		MediaSource: transfer.PinterestMediaSource{
			SourceType: "image_url",
			URL:        mediaURLs[0],
		},
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/pins", pinReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var pinResp transfer.PinterestPinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pinResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if pinResp.ID == "" {
		msg := pinResp.Message
		if msg == "" {
			msg = "pin creation failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), pinResp.ID)
}

func (p *pinterestPublisher) firstBoard(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/boards", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var boardsResp transfer.PinterestBoardsResponse
	if err := json.NewDecoder(resp.Body).Decode(&boardsResp); err != nil {
		return "", err
	}
	if len(boardsResp.Items) == 0 {
		if boardsResp.Message != "" {
			return "", errors.New(boardsResp.Message)
		}
		return "", errors.New("No boards found. Please create a board first.")
	}

	return boardsResp.Items[0].ID, nil
}
