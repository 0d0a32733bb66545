package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type mediumPublisher struct {
	client  *http.Client
	baseURL string
}

func NewMediumPublisher(client *http.Client) Publisher {
	return &mediumPublisher{
		client:  client,
		baseURL: "https://api.medium.com/v1",
	}
}

func (p *mediumPublisher) Platform() string {
	return "medium"
}

func (p *mediumPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	userID, err := p.lookupUser(ctx, accessToken)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	title := "CreatorFlow Post"
	content := post.Content
	for _, mediaURL := range mediaURLs {
		content += fmt.Sprintf("\n\n![%s](%s)", title, mediaURL)
	}

	postReq := transfer.MediumPostRequest{
		Title:         title,
		ContentFormat: "markdown",
		Content:       content,
		PublishStatus: "public",
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/users/"+userID+"/posts", postReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var postResp transfer.MediumPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&postResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if postResp.Data.ID == "" {
		msg := postResp.Message
		if msg == "" && len(postResp.Errors) > 0 {
			msg = postResp.Errors[0].Message
		}
		if msg == "" {
			msg = "post creation failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), postResp.Data.ID)
}

func (p *mediumPublisher) lookupUser(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/me", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var userResp transfer.MediumUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&userResp); err != nil {
		return "", err
	}
	if userResp.Data.ID == "" {
		if len(userResp.Errors) > 0 {
			return "", errors.New(userResp.Errors[0].Message)
		}
		return "", errors.New("user lookup failed with status " + resp.Status)
	}

	return userResp.Data.ID, nil
}
