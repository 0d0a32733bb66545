package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

const blueskyMaxImages = 4

// blueskyPublisher speaks the AT Protocol XRPC surface. The stored access
// token is an app password, exchanged for a session JWT on every publish.
type blueskyPublisher struct {
	client  *http.Client
	baseURL string
}

func NewBlueskyPublisher(client *http.Client) Publisher {
	return &blueskyPublisher{
		client:  client,
		baseURL: "https://bsky.social/xrpc",
	}
}

func (p *blueskyPublisher) Platform() string {
	return "bluesky"
}

func (p *blueskyPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	session, err := p.createSession(ctx, account.AccountUsername, accessToken)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	var images []transfer.BlueskyImage
	for i, mediaURL := range mediaURLs {
		if i >= blueskyMaxImages {
			break
		}
		if !isImageURL(mediaURL) {
			continue
		}
		blob, err := p.uploadBlob(ctx, session.AccessJwt, mediaURL)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		images = append(images, transfer.BlueskyImage{Alt: "", Image: blob})
	}

	record := transfer.BlueskyPostRecord{
		Text:      post.Content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if len(images) > 0 {
		record.Embed = &transfer.BlueskyEmbed{
			Type:   "app.bsky.embed.images",
			Images: images,
		}
	}

	createReq := transfer.BlueskyCreateRecordRequest{
		Repo:       session.DID,
		Collection: "app.bsky.feed.post",
		Record:     record,
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/com.atproto.repo.createRecord", createReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessJwt)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var createResp transfer.BlueskyCreateRecordResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if createResp.URI == "" {
		msg := createResp.Message
		if msg == "" {
			msg = createResp.Error
		}
		if msg == "" {
			msg = "record creation failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), createResp.URI)
}

func (p *blueskyPublisher) createSession(ctx context.Context, identifier, password string) (*transfer.BlueskySessionResponse, error) {
	sessionReq := transfer.BlueskySessionRequest{
		Identifier: identifier,
		Password:   password,
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/com.atproto.server.createSession", sessionReq)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var session transfer.BlueskySessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	if session.AccessJwt == "" || session.DID == "" {
		msg := session.Message
		if msg == "" {
			msg = session.Error
		}
		if msg == "" {
			msg = "session creation failed"
		}
		return nil, errors.New(msg)
	}

	return &session, nil
}

func (p *blueskyPublisher) uploadBlob(ctx context.Context, accessJwt, mediaURL string) (json.RawMessage, error) {
	data, contentType, err := fetchMedia(ctx, p.client, mediaURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/com.atproto.repo.uploadBlob", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessJwt)
	req.Header.Set("Content-Type", contentType)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var blobResp transfer.BlueskyBlobResponse
	if err := json.NewDecoder(resp.Body).Decode(&blobResp); err != nil {
		return nil, err
	}
	if len(blobResp.Blob) == 0 {
		if blobResp.Message != "" {
			return nil, errors.New(blobResp.Message)
		}
		return nil, errNoMediaID
	}

	return blobResp.Blob, nil
}
