package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

const twitterMaxMedia = 4

type twitterPublisher struct {
	client    *http.Client
	apiURL    string
	uploadURL string
}

func NewTwitterPublisher(client *http.Client) Publisher {
	return &twitterPublisher{
		client:    client,
		apiURL:    "https://api.twitter.com/2",
		uploadURL: "https://upload.twitter.com/1.1/media/upload.json",
	}
}

func (p *twitterPublisher) Platform() string {
	return "twitter"
}

func (p *twitterPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	var mediaIDs []string
	for i, mediaURL := range mediaURLs {
		if i >= twitterMaxMedia {
			break
		}

		// A media item that cannot be fetched or uploaded is skipped, not
		// fatal. The tweet still goes out with whatever uploaded.
		data, contentType, err := fetchMedia(ctx, p.client, mediaURL)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		if contentType == "" {
			continue
		}

		mediaID, err := p.uploadMedia(ctx, accessToken, data, contentType, fileNameFromURL(mediaURL))
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	tweet := transfer.TweetRequest{Text: post.Content}
	if len(mediaIDs) > 0 {
		tweet.Media = &transfer.TweetMedia{MediaIDs: mediaIDs}
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.apiURL+"/tweets", tweet)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var tweetResp transfer.TweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&tweetResp); err != nil {
		return failure(p.Platform(), err.Error())
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		msg := tweetResp.Detail
		if msg == "" && len(tweetResp.Errors) > 0 {
			msg = tweetResp.Errors[0].Message
		}
		if msg == "" {
			msg = "tweet request failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	if tweetResp.Data.ID == "" {
		return failure(p.Platform(), "Tweet posted but no tweet ID returned.")
	}

	return success(p.Platform(), tweetResp.Data.ID)
}

func (p *twitterPublisher) uploadMedia(ctx context.Context, accessToken string, data []byte, contentType, fileName string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("media", fileName)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.uploadURL, &body)
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

	var uploadResp transfer.TwitterMediaUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", err
	}
	if uploadResp.MediaIDString == "" {
		return "", errNoMediaID
	}

	return uploadResp.MediaIDString, nil
}
