package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

// twitchPublisher has no feed to post to. When the broadcaster is live it
// captures a clip, otherwise it rewrites the channel title with the post
// content.
type twitchPublisher struct {
	client   *http.Client
	baseURL  string
	clientID string
}

func NewTwitchPublisher(client *http.Client, clientID string) Publisher {
	return &twitchPublisher{
		client:   client,
		baseURL:  "https://api.twitch.tv/helix",
		clientID: clientID,
	}
}

func (p *twitchPublisher) Platform() string {
	return "twitch"
}

func (p *twitchPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	broadcasterID, err := p.broadcasterID(ctx, accessToken)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	live, err := p.isLive(ctx, accessToken, broadcasterID)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	title := truncate(post.Content, 140)

	if live {
		clipID, err := p.createClip(ctx, accessToken, broadcasterID)
		if err != nil {
			return failure(p.Platform(), err.Error())
		}
		return success(p.Platform(), clipID)
	}

	if err := p.updateChannelTitle(ctx, accessToken, broadcasterID, title); err != nil {
		return failure(p.Platform(), err.Error())
	}
	return success(p.Platform(), fmt.Sprintf("channel_update_%d", time.Now().UnixMilli()))
}

func (p *twitchPublisher) broadcasterID(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/users", nil)
	if err != nil {
		return "", err
	}
	p.authorize(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var usersResp transfer.TwitchUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&usersResp); err != nil {
		return "", err
	}
	if len(usersResp.Data) == 0 {
		if usersResp.Message != "" {
			return "", errors.New(usersResp.Message)
		}
		return "", errors.New("user lookup failed with status " + resp.Status)
	}

	return usersResp.Data[0].ID, nil
}

func (p *twitchPublisher) isLive(ctx context.Context, accessToken, broadcasterID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/streams?user_id="+broadcasterID, nil)
	if err != nil {
		return false, err
	}
	p.authorize(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var streamsResp transfer.TwitchStreamsResponse
	if err := json.NewDecoder(resp.Body).Decode(&streamsResp); err != nil {
		return false, err
	}

	return len(streamsResp.Data) > 0 && streamsResp.Data[0].Type == "live", nil
}

func (p *twitchPublisher) createClip(ctx context.Context, accessToken, broadcasterID string) (string, error) {
	clipReq := transfer.TwitchClipRequest{
		BroadcasterID: broadcasterID,
		HasDelay:      false,
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/clips", clipReq)
	if err != nil {
		return "", err
	}
	p.authorize(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var clipsResp transfer.TwitchClipsResponse
	if err := json.NewDecoder(resp.Body).Decode(&clipsResp); err != nil {
		return "", err
	}
	if len(clipsResp.Data) == 0 {
		if clipsResp.Message != "" {
			return "", errors.New(clipsResp.Message)
		}
		return "", errors.New("clip creation failed with status " + resp.Status)
	}

	return clipsResp.Data[0].ID, nil
}

func (p *twitchPublisher) updateChannelTitle(ctx context.Context, accessToken, broadcasterID, title string) error {
	updateReq := transfer.TwitchChannelUpdateRequest{Title: title}

	req, err := newJSONRequest(ctx, http.MethodPatch, p.baseURL+"/channels?broadcaster_id="+broadcasterID, updateReq)
	if err != nil {
		return err
	}
	p.authorize(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		slog.Info("channel update failed with status " + resp.Status)
		return errors.New("channel update failed with status " + resp.Status)
	}
	return nil
}

func (p *twitchPublisher) authorize(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Client-Id", p.clientID)
}
