package publisher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsImageURL(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.com/a.jpg", true},
		{"https://cdn.example.com/a.PNG", true},
		{"https://cdn.example.com/a.webp?sig=abc", true},
		{"https://cdn.example.com/a.mp4", false},
		{"https://cdn.example.com/a.pdf", false},
	}
	for _, c := range cases {
		if got := isImageURL(c.url); got != c.want {
			t.Errorf("Expected isImageURL(%s) = %v, got %v", c.url, c.want, got)
		}
	}
}

func TestIsVideoURL(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.com/a.mp4", true},
		{"https://cdn.example.com/a.MOV?sig=abc", true},
		{"https://cdn.example.com/a.jpg", false},
	}
	for _, c := range cases {
		if got := isVideoURL(c.url); got != c.want {
			t.Errorf("Expected isVideoURL(%s) = %v, got %v", c.url, c.want, got)
		}
	}
}

func TestFileNameFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/media/a.png", "a.png"},
		{"https://cdn.example.com/media/a.png?sig=abc", "a.png"},
		{"https://cdn.example.com/", "upload"},
		{"https://cdn.example.com", "upload"},
	}
	for _, c := range cases {
		if got := fileNameFromURL(c.url); got != c.want {
			t.Errorf("Expected fileNameFromURL(%s) = '%s', got '%s'", c.url, c.want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("Expected short string untouched, got '%s'", got)
	}
	if got := truncate("hello world", 5); got != "hello" {
		t.Errorf("Expected 'hello', got '%s'", got)
	}
	if got := truncate("héllo wörld", 5); got != "héllo" {
		t.Errorf("Expected rune safe cut 'héllo', got '%s'", got)
	}
}

func TestFetchMediaSniffsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(pngHeader)
	}))
	defer server.Close()

	data, contentType, err := fetchMedia(context.Background(), server.Client(), server.URL+"/blob")
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != len(pngHeader) {
		t.Errorf("Expected %d bytes, got %d", len(pngHeader), len(data))
	}
	if contentType != "image/png" {
		t.Errorf("Expected sniffed type image/png, got '%s'", contentType)
	}
}

func TestFetchMediaNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if _, _, err := fetchMedia(context.Background(), server.Client(), server.URL+"/blob"); err == nil {
		t.Error("Expected error for non 200 response")
	}
}
