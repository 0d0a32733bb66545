package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

func TestTiktokRequiresVideo(t *testing.T) {
	p := &tiktokPublisher{client: http.DefaultClient}

	result := p.Publish(context.Background(), "token", &models.Post{Content: "hello"}, &models.SocialAccount{Platform: "tiktok"}, nil)

	if result.Success {
		t.Fatal("Expected failure without media")
	}
	if result.Error != "TikTok requires video content for posting" {
		t.Errorf("Expected video requirement message, got '%s'", result.Error)
	}
}

func TestTiktokUploadHandshake(t *testing.T) {
	video := bytes.Repeat([]byte("v"), 1024)

	var initReq transfer.TiktokUploadInitRequest
	var createReq transfer.TiktokCreateRequest
	var chunkRange string
	var uploaded []byte

	mux := http.NewServeMux()
	mux.HandleFunc("/media/clip.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Write(video)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/v2/post/publish/video/init/", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&initReq); err != nil {
			t.Fatal(err)
		}
		var resp transfer.TiktokUploadInitResponse
		resp.Data.PublishID = "pub1"
		resp.Data.UploadURL = server.URL + "/upload"
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		chunkRange = r.Header.Get("Content-Range")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err)
		}
		uploaded = append(uploaded, body...)
	})
	mux.HandleFunc("/v2/post/publish/create/", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
			t.Fatal(err)
		}
		var resp transfer.TiktokCreateResponse
		resp.Data.ShareID = "share1"
		json.NewEncoder(w).Encode(resp)
	})

	p := &tiktokPublisher{client: server.Client(), baseURL: server.URL}

	result := p.Publish(context.Background(), "token", &models.Post{Content: "my clip"}, &models.SocialAccount{Platform: "tiktok"}, []string{server.URL + "/media/clip.mp4"})

	if !result.Success {
		t.Fatalf("Expected success, got error '%s'", result.Error)
	}
	if result.PlatformPostID != "share1" {
		t.Errorf("Expected share ID 'share1', got '%s'", result.PlatformPostID)
	}
	if initReq.SourceInfo.Source != "FILE_UPLOAD" {
		t.Errorf("Expected FILE_UPLOAD source, got '%s'", initReq.SourceInfo.Source)
	}
	if initReq.SourceInfo.VideoSize != int64(len(video)) {
		t.Errorf("Expected video size %d, got %d", len(video), initReq.SourceInfo.VideoSize)
	}
	if initReq.PostInfo.Title != "my clip" {
		t.Errorf("Expected title 'my clip', got '%s'", initReq.PostInfo.Title)
	}
	wantRange := fmt.Sprintf("bytes 0-%d/%d", len(video)-1, len(video))
	if chunkRange != wantRange {
		t.Errorf("Expected content range '%s', got '%s'", wantRange, chunkRange)
	}
	if !bytes.Equal(uploaded, video) {
		t.Errorf("Expected %d uploaded bytes, got %d", len(video), len(uploaded))
	}
	if createReq.PublishID != "pub1" {
		t.Errorf("Expected publish ID 'pub1', got '%s'", createReq.PublishID)
	}
}

func TestTiktokInitFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/media/clip.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte("video"))
	})
	mux.HandleFunc("/v2/post/publish/video/init/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		var resp transfer.TiktokUploadInitResponse
		resp.Error = transfer.TiktokError{Code: "access_token_invalid", Message: "The access token is invalid"}
		json.NewEncoder(w).Encode(resp)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	p := &tiktokPublisher{client: server.Client(), baseURL: server.URL}

	result := p.Publish(context.Background(), "token", &models.Post{Content: "clip"}, &models.SocialAccount{Platform: "tiktok"}, []string{server.URL + "/media/clip.mp4"})

	if result.Success {
		t.Fatal("Expected failure")
	}
	if result.Error != "The access token is invalid" {
		t.Errorf("Expected invalid token message, got '%s'", result.Error)
	}
}
