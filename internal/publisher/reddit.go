package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

const redditUserAgent = "CreatorFlow/1.0 (by /u/creatorflow_bot)"

type redditPublisher struct {
	client  *http.Client
	baseURL string
}

func NewRedditPublisher(client *http.Client) Publisher {
	return &redditPublisher{
		client:  client,
		baseURL: "https://oauth.reddit.com",
	}
}

func (p *redditPublisher) Platform() string {
	return "reddit"
}

func (p *redditPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	title := truncate(post.Content, 300)
	if title == "" {
		title = "CreatorFlow Post"
	}

	// Without a configured subreddit the post goes to the user's profile.
	subreddit := account.AccountID
	if subreddit == "" {
		subreddit = "u_" + account.AccountUsername
	}

	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("sr", subreddit)
	form.Set("title", title)
	if len(mediaURLs) > 0 {
		form.Set("kind", "link")
		form.Set("url", mediaURLs[0])
	} else {
		form.Set("kind", "self")
		form.Set("text", post.Content)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/submit", strings.NewReader(form.Encode()))
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", redditUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var submitResp transfer.RedditSubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitResp); err != nil {
		return failure(p.Platform(), err.Error())
	}

	if len(submitResp.JSON.Errors) > 0 {
		msg := "submit rejected"
		if len(submitResp.JSON.Errors[0]) > 1 {
			msg = submitResp.JSON.Errors[0][1]
		}
		return failure(p.Platform(), msg)
	}

	postID := submitResp.JSON.Data.ID
	if postID == "" {
		postID = submitResp.JSON.Data.Name
	}
	if postID == "" {
		return failure(p.Platform(), "submit failed with status "+resp.Status)
	}

	return success(p.Platform(), postID)
}
