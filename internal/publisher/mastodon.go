package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

const mastodonMaxMedia = 4

type mastodonPublisher struct {
	client  *http.Client
	baseURL string
}

func NewMastodonPublisher(client *http.Client, instance string) Publisher {
	if instance == "" {
		instance = "mastodon.social"
	}
	baseURL := instance
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	return &mastodonPublisher{
		client:  client,
		baseURL: baseURL,
	}
}

func (p *mastodonPublisher) Platform() string {
	return "mastodon"
}

func (p *mastodonPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	var mediaIDs []string
	for i, mediaURL := range mediaURLs {
		if i >= mastodonMaxMedia {
			break
		}
		mediaID, err := p.uploadMedia(ctx, accessToken, mediaURL)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	status := post.Content
	if status == "" {
		status = "CreatorFlow Post"
	}

	statusReq := transfer.MastodonStatusRequest{
		Status:     status,
		Visibility: "public",
		MediaIDs:   mediaIDs,
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/api/v1/statuses", statusReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var statusResp transfer.MastodonStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&statusResp); err != nil {
		return failure(p.Platform(), err.Error())
	}

	if statusResp.ID == "" {
		msg := statusResp.Error
		if msg == "" {
			msg = statusResp.Message
		}
		if msg == "" {
			msg = "status post failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), statusResp.ID)
}

func (p *mastodonPublisher) uploadMedia(ctx context.Context, accessToken, mediaURL string) (string, error) {
	data, _, err := fetchMedia(ctx, p.client, mediaURL)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileNameFromURL(mediaURL))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v1/media", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var mediaResp transfer.MastodonMediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&mediaResp); err != nil {
		return "", err
	}
	if mediaResp.ID == "" {
		if mediaResp.Error != "" {
			return "", errors.New(mediaResp.Error)
		}
		return "", errNoMediaID
	}

	return mediaResp.ID, nil
}
