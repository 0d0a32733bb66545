package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"

	"github.com/h2non/filetype"
)

var errNoMediaID = errors.New("media upload returned no media id")

var (
	imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)(\?.*)?$`)
	videoExtPattern = regexp.MustCompile(`(?i)\.(mp4|mov|avi|webm|mkv)(\?.*)?$`)
)

func isImageURL(rawURL string) bool {
	return imageExtPattern.MatchString(rawURL)
}

func isVideoURL(rawURL string) bool {
	return videoExtPattern.MatchString(rawURL)
}

// fetchMedia downloads a media object and reports its content type, sniffing
// the bytes when the server does not say.
func fetchMedia(ctx context.Context, client *http.Client, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch media: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			contentType = kind.MIME.Value
		}
	}

	return data, contentType, nil
}

func fileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "upload"
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}

func newJSONRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
