package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type facebookPublisher struct {
	client  *http.Client
	baseURL string
}

func NewFacebookPublisher(client *http.Client) Publisher {
	return &facebookPublisher{
		client:  client,
		baseURL: "https://graph.facebook.com/v18.0",
	}
}

func (p *facebookPublisher) Platform() string {
	return "facebook"
}

func (p *facebookPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	var attached []transfer.GraphAttachedMedia
	for _, mediaURL := range mediaURLs {
		photoID, err := p.uploadPhoto(ctx, accessToken, mediaURL)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		attached = append(attached, transfer.GraphAttachedMedia{MediaFbid: photoID})
	}

	feedReq := transfer.GraphFeedRequest{
		Message:       post.Content,
		AttachedMedia: attached,
		AccessToken:   accessToken,
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/me/feed", feedReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var feedResp transfer.GraphFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feedResp); err != nil {
		return failure(p.Platform(), err.Error())
	}

	if feedResp.Error.Message != "" {
		return failure(p.Platform(), feedResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || feedResp.ID == "" {
		return failure(p.Platform(), "feed request failed with status "+resp.Status)
	}

	return success(p.Platform(), feedResp.ID)
}

// uploadPhoto uploads one image unpublished so it can ride along on the feed
// post as attached media.
func (p *facebookPublisher) uploadPhoto(ctx context.Context, accessToken, mediaURL string) (string, error) {
	data, _, err := fetchMedia(ctx, p.client, mediaURL)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("source", fileNameFromURL(mediaURL))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.WriteField("published", "false"); err != nil {
		return "", err
	}
	if err := writer.WriteField("access_token", accessToken); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/me/photos", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var uploadResp transfer.GraphPhotoUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", err
	}
	if uploadResp.Error.Message != "" {
		return "", errors.New(uploadResp.Error.Message)
	}
	if uploadResp.ID == "" {
		return "", errors.New("photo upload returned no id")
	}

	return uploadResp.ID, nil
}
