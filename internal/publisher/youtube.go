package publisher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type youtubePublisher struct {
	client *http.Client
}

func NewYoutubePublisher(client *http.Client) Publisher {
	return &youtubePublisher{client: client}
}

func (p *youtubePublisher) Platform() string {
	return "youtube"
}

func (p *youtubePublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	if len(mediaURLs) == 0 {
		return failure(p.Platform(), "YouTube requires video content for posting")
	}

	token := &oauth2.Token{AccessToken: accessToken}
	authClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	service, err := youtube.NewService(ctx, option.WithHTTPClient(authClient))
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	tempFile, err := p.downloadVideo(ctx, mediaURLs[0])
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer os.Remove(tempFile)

	file, err := os.Open(tempFile)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer file.Close()

	title := truncate(post.Content, 100)
	if title == "" {
		title = "CreatorFlow Video"
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: post.Content,
			CategoryId:  "22",
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: "public",
		},
	}

	call := service.Videos.Insert([]string{"snippet", "status"}, video)
	response, err := call.Media(file).Do()
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	return success(p.Platform(), response.Id)
}

// downloadVideo spools the video to a temp file. The YouTube client wants a
// seekable reader for resumable uploads.
func (p *youtubePublisher) downloadVideo(ctx context.Context, url string) (string, error) {
	tempFile, err := os.CreateTemp("", "video-*.mp4")
	if err != nil {
		return "", fmt.Errorf("error creating temporary file: %w", err)
	}
	defer tempFile.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error downloading video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected response status: %d", resp.StatusCode)
	}

	if _, err := io.Copy(tempFile, resp.Body); err != nil {
		return "", fmt.Errorf("error saving video to temporary file: %w", err)
	}

	return tempFile.Name(), nil
}
