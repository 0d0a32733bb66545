package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

const tiktokChunkSize = 5 * 1024 * 1024

type tiktokPublisher struct {
	client  *http.Client
	baseURL string
}

func NewTiktokPublisher(client *http.Client) Publisher {
	return &tiktokPublisher{
		client:  client,
		baseURL: "https://open.tiktokapis.com",
	}
}

func (p *tiktokPublisher) Platform() string {
	return "tiktok"
}

func (p *tiktokPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	if len(mediaURLs) == 0 {
		return failure(p.Platform(), "TikTok requires video content for posting")
	}

	data, contentType, err := fetchMedia(ctx, p.client, mediaURLs[0])
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	if contentType == "" {
		contentType = "video/mp4"
	}

	videoSize := int64(len(data))
	totalChunks := int((videoSize + tiktokChunkSize - 1) / tiktokChunkSize)

	postInfo := transfer.TiktokPostInfo{
		Title:        post.Content,
		PrivacyLevel: "PUBLIC_TO_EVERYONE",
	}

	initReq := transfer.TiktokUploadInitRequest{
		PostInfo: postInfo,
		SourceInfo: transfer.TiktokSourceInfo{
			Source:          "FILE_UPLOAD",
			VideoSize:       videoSize,
			ChunkSize:       tiktokChunkSize,
			TotalChunkCount: totalChunks,
		},
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/v2/post/publish/video/init/", initReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var initResp transfer.TiktokUploadInitResponse
	if err := json.NewDecoder(resp.Body).Decode(&initResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if initResp.Data.UploadURL == "" || initResp.Data.PublishID == "" {
		msg := initResp.Error.Message
		if msg == "" {
			msg = "upload init failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	if err := p.uploadChunks(ctx, initResp.Data.UploadURL, data, contentType); err != nil {
		return failure(p.Platform(), err.Error())
	}

	createReq := transfer.TiktokCreateRequest{
		PublishID: initResp.Data.PublishID,
		PostInfo:  postInfo,
	}

	req, err = newJSONRequest(ctx, http.MethodPost, p.baseURL+"/v2/post/publish/create/", createReq)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp2, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp2.Body.Close()

	var createResp transfer.TiktokCreateResponse
	if err := json.NewDecoder(resp2.Body).Decode(&createResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if createResp.Data.ShareID == "" {
		msg := createResp.Error.Message
		if msg == "" {
			msg = "publish create failed with status " + resp2.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), createResp.Data.ShareID)
}

func (p *tiktokPublisher) uploadChunks(ctx context.Context, uploadURL string, data []byte, contentType string) error {
	total := int64(len(data))
	for start := int64(0); start < total; start += tiktokChunkSize {
		end := start + tiktokChunkSize
		if end > total {
			end = total
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data[start:end]))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end-1, total))

		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()

		if resp.StatusCode >= http.StatusMultipleChoices {
			return fmt.Errorf("chunk upload failed with status %s", resp.Status)
		}
	}
	return nil
}
