package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type linkedinPublisher struct {
	client  *http.Client
	baseURL string
}

func NewLinkedinPublisher(client *http.Client) Publisher {
	return &linkedinPublisher{
		client:  client,
		baseURL: "https://api.linkedin.com/v2",
	}
}

func (p *linkedinPublisher) Platform() string {
	return "linkedin"
}

func (p *linkedinPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	authorURN := "urn:li:person:" + account.AccountID

	shareContent := transfer.LinkedinShareContent{
		ShareCommentary:    transfer.LinkedinShareCommentary{Text: post.Content},
		ShareMediaCategory: "NONE",
	}

	// LinkedIn shares carry a single media asset. A media failure here fails
	// the whole share rather than degrading to a text post.
	if len(mediaURLs) > 0 {
		asset, isVideo, err := p.uploadAsset(ctx, accessToken, authorURN, mediaURLs[0])
		if err != nil {
			return failure(p.Platform(), err.Error())
		}

		if isVideo {
			shareContent.ShareMediaCategory = "VIDEO"
		} else {
			shareContent.ShareMediaCategory = "IMAGE"
		}
		shareContent.Media = []transfer.LinkedinShareMedia{{Status: "READY", Media: asset}}
	}

	ugcPost := transfer.LinkedinUGCPostRequest{
		Author:         authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]transfer.LinkedinShareContent{
			"com.linkedin.ugc.ShareContent": shareContent,
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/ugcPosts", ugcPost)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var postResp transfer.LinkedinUGCPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&postResp); err != nil && resp.Header.Get("x-restli-id") == "" {
		return failure(p.Platform(), err.Error())
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		msg := postResp.Message
		if msg == "" {
			msg = "share request failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	postID := resp.Header.Get("x-restli-id")
	if postID == "" {
		postID = postResp.ID
	}
	return success(p.Platform(), postID)
}

func (p *linkedinPublisher) uploadAsset(ctx context.Context, accessToken, authorURN, mediaURL string) (asset string, isVideo bool, err error) {
	data, contentType, err := fetchMedia(ctx, p.client, mediaURL)
	if err != nil {
		return "", false, err
	}

	isVideo = strings.HasPrefix(contentType, "video/")
	recipe := "urn:li:digitalmediaRecipe:feedshare-image"
	if isVideo {
		recipe = "urn:li:digitalmediaRecipe:feedshare-video"
	}

	var registerReq transfer.LinkedinRegisterUploadRequest
	registerReq.RegisterUploadRequest.Owner = authorURN
	registerReq.RegisterUploadRequest.Recipes = []string{recipe}
	registerReq.RegisterUploadRequest.ServiceRelationships = []transfer.LinkedinServiceRelationship{
		{RelationshipType: "OWNER", Identifier: "urn:li:userGeneratedContent"},
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/assets?action=registerUpload", registerReq)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	var registerResp transfer.LinkedinRegisterUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&registerResp); err != nil {
		return "", false, err
	}
	uploadURL := registerResp.Value.UploadMechanism.MediaUploadHTTPRequest.UploadURL
	if uploadURL == "" {
		if registerResp.Message != "" {
			return "", false, errors.New(registerResp.Message)
		}
		return "", false, errors.New("upload registration returned no upload url")
	}

	// The upload URL is pre-signed. No Authorization header on the PUT.
	putReq, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", false, err
	}
	putReq.Header.Set("Content-Type", contentType)

	putResp, err := p.client.Do(putReq)
	if err != nil {
		return "", false, err
	}
	defer putResp.Body.Close()

	if putResp.StatusCode >= http.StatusMultipleChoices {
		return "", false, errors.New("media upload failed with status " + putResp.Status)
	}

	return registerResp.Value.Asset, isVideo, nil
}
