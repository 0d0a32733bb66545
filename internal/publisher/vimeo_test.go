package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

func TestVimeoPullUpload(t *testing.T) {
	var gotReq transfer.VimeoVideoRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me/videos" {
			t.Errorf("Expected /me/videos, got %s", r.URL.Path)
		}
		if !strings.Contains(r.Header.Get("Accept"), "vnd.vimeo") {
			t.Errorf("Expected vimeo accept header, got '%s'", r.Header.Get("Accept"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(transfer.VimeoVideoResponse{URI: "/videos/987654"})
	}))
	defer server.Close()

	p := &vimeoPublisher{client: server.Client(), baseURL: server.URL}

	result := p.Publish(context.Background(), "token", &models.Post{Content: "my film"}, &models.SocialAccount{Platform: "vimeo"}, []string{"https://cdn.example.com/film.mp4"})

	if !result.Success {
		t.Fatalf("Expected success, got error '%s'", result.Error)
	}
	if result.PlatformPostID != "987654" {
		t.Errorf("Expected video ID '987654', got '%s'", result.PlatformPostID)
	}
	if gotReq.Upload.Approach != "pull" {
		t.Errorf("Expected pull approach, got '%s'", gotReq.Upload.Approach)
	}
	if gotReq.Upload.Link != "https://cdn.example.com/film.mp4" {
		t.Errorf("Expected video link forwarded, got '%s'", gotReq.Upload.Link)
	}
	if gotReq.Name != "my film" {
		t.Errorf("Expected name 'my film', got '%s'", gotReq.Name)
	}
}

func TestVimeoRequiresVideo(t *testing.T) {
	p := &vimeoPublisher{client: http.DefaultClient}

	result := p.Publish(context.Background(), "token", &models.Post{Content: "hello"}, &models.SocialAccount{Platform: "vimeo"}, nil)

	if result.Success {
		t.Fatal("Expected failure without media")
	}
	if result.Error != "Vimeo requires video content for posting" {
		t.Errorf("Expected video requirement message, got '%s'", result.Error)
	}
}

func TestInstagramStubReturnsSyntheticID(t *testing.T) {
	p := NewInstagramPublisher()

	result := p.Publish(context.Background(), "token", &models.Post{Content: "hello"}, &models.SocialAccount{Platform: "instagram"}, nil)

	if !result.Success {
		t.Fatalf("Expected stub success, got error '%s'", result.Error)
	}
	if !strings.HasPrefix(result.PlatformPostID, "ig_") {
		t.Errorf("Expected synthetic ig_ post ID, got '%s'", result.PlatformPostID)
	}
}
