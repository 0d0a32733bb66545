package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type behancePublisher struct {
	client  *http.Client
	baseURL string
}

func NewBehancePublisher(client *http.Client) Publisher {
	return &behancePublisher{
		client:  client,
		baseURL: "https://api.behance.net/v2",
	}
}

func (p *behancePublisher) Platform() string {
	return "behance"
}

func (p *behancePublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	if len(mediaURLs) == 0 {
		return failure(p.Platform(), "Behance requires at least one image for a project")
	}

	if _, err := p.currentUser(ctx, accessToken); err != nil {
		return failure(p.Platform(), err.Error())
	}

	name := truncate(post.Content, 100)
	if name == "" {
		name = "CreatorFlow Project"
	}

	modules := make([]transfer.BehanceModule, 0, len(mediaURLs))
	for i, mediaURL := range mediaURLs {
		modules = append(modules, transfer.BehanceModule{
			Type:  "image",
			Src:   mediaURL,
			Title: fmt.Sprintf("Image %d", i+1),
		})
	}

	projectReq := transfer.BehanceProjectRequest{
		Name:        name,
		Description: post.Content,
		Modules:     modules,
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/projects", projectReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var projectResp transfer.BehanceProjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&projectResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if projectResp.Project.ID == 0 {
		msg := "project creation failed with status " + resp.Status
		if len(projectResp.Messages) > 0 {
			msg = projectResp.Messages[0]
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), strconv.FormatInt(projectResp.Project.ID, 10))
}

func (p *behancePublisher) currentUser(ctx context.Context, accessToken string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/users/me", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var userResp transfer.BehanceUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&userResp); err != nil {
		return 0, err
	}
	if userResp.User.ID == 0 {
		return 0, errors.New("user lookup failed with status " + resp.Status)
	}

	return userResp.User.ID, nil
}
