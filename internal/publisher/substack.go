package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type substackPublisher struct {
	client  *http.Client
	baseURL string
}

func NewSubstackPublisher(client *http.Client) Publisher {
	return &substackPublisher{
		client:  client,
		baseURL: "https://substack.com/api/v1",
	}
}

func (p *substackPublisher) Platform() string {
	return "substack"
}

func (p *substackPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	publicationID, err := p.firstPublication(ctx, accessToken)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	body := post.Content
	for _, mediaURL := range mediaURLs {
		body += fmt.Sprintf("\n\n![image](%s)", mediaURL)
	}

	postReq := transfer.SubstackPostRequest{
		Title:       "CreatorFlow Newsletter",
		Subtitle:    truncate(post.Content, 140),
		Body:        body,
		IsDraft:     false,
		SendEmail:   true,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	}

	req, err := newJSONRequest(ctx, http.MethodPost, fmt.Sprintf("%s/publications/%d/posts", p.baseURL, publicationID), postReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var postResp transfer.SubstackPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&postResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if postResp.ID == 0 {
		msg := postResp.Message
		if msg == "" {
			msg = "post creation failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), strconv.FormatInt(postResp.ID, 10))
}

func (p *substackPublisher) firstPublication(ctx context.Context, accessToken string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/publications", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var publications []transfer.SubstackPublication
	if err := json.NewDecoder(resp.Body).Decode(&publications); err != nil {
		return 0, err
	}
	if len(publications) == 0 {
		return 0, errors.New("No Substack publications found. Please create a publication first.")
	}

	return publications[0].ID, nil
}
