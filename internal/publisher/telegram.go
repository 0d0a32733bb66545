package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

// telegramPublisher talks to the Bot API. The bot token rides in the URL
// path, not an Authorization header, so the resolver's plaintext token is
// spliced into the endpoint.
type telegramPublisher struct {
	client  *http.Client
	baseURL string
}

func NewTelegramPublisher(client *http.Client) Publisher {
	return &telegramPublisher{
		client:  client,
		baseURL: "https://api.telegram.org",
	}
}

func (p *telegramPublisher) Platform() string {
	return "telegram"
}

func (p *telegramPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	chatID := account.AccountID
	if chatID == "" {
		chatID = "@" + account.AccountUsername
	}

	text := post.Content
	if text == "" {
		text = "CreatorFlow Post"
	}

	var method string
	payload := transfer.TelegramSendRequest{ChatID: chatID, ParseMode: "HTML"}

	switch {
	case len(mediaURLs) == 0:
		method = "sendMessage"
		payload.Text = text
	case isImageURL(mediaURLs[0]):
		method = "sendPhoto"
		payload.Photo = mediaURLs[0]
		payload.Caption = text
	case isVideoURL(mediaURLs[0]):
		method = "sendVideo"
		payload.Video = mediaURLs[0]
		payload.Caption = text
	default:
		method = "sendDocument"
		payload.Document = mediaURLs[0]
		payload.Caption = text
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/bot"+accessToken+"/"+method, payload)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var sendResp transfer.TelegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return failure(p.Platform(), err.Error())
	}

	if !sendResp.OK {
		msg := sendResp.Description
		if msg == "" {
			msg = "send failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), strconv.FormatInt(sendResp.Result.MessageID, 10))
}
