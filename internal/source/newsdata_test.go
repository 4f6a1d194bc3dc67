package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dualnews/internal/model"
)

func TestNewsDataFetchNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" {
			t.Errorf("missing apikey parameter")
		}
		if q.Get("language") != "en" {
			t.Errorf("expected language=en, got %q", q.Get("language"))
		}
		if q.Get("size") != "7" {
			t.Errorf("expected size=7, got %q", q.Get("size"))
		}
		fmt.Fprint(w, `{
			"status": "success",
			"results": [
				{
					"title": "Apple Watch Ultra review",
					"description": "A solid update",
					"link": "https://example.com/a1",
					"image_url": "https://example.com/img.jpg",
					"pubDate": "2025-08-01 10:00:00",
					"source_id": "example"
				},
				{"title": "No link", "link": ""}
			]
		}`)
	}))
	defer srv.Close()

	s := NewNewsData("test-key", time.Second)
	s.baseURL = srv.URL

	got := s.Fetch(context.Background(), `"Apple" AND "Watch"`, 7, model.LangEN)

	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	want := model.Article{
		Title:       "Apple Watch Ultra review",
		Description: "A solid update",
		URL:         "https://example.com/a1",
		ImageURL:    "https://example.com/img.jpg",
		PublishedAt: "2025-08-01 10:00:00",
		Source:      "example",
		Language:    model.LangEN,
	}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestNewsDataServerErrorYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewNewsData("test-key", time.Second)
	s.baseURL = srv.URL

	if got := s.Fetch(context.Background(), "q", 5, model.LangEN); len(got) != 0 {
		t.Errorf("expected empty result on HTTP error, got %d articles", len(got))
	}
}

func TestNewsDataMissingKeySkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be issued without an API key")
	}))
	defer srv.Close()

	s := NewNewsData("", time.Second)
	s.baseURL = srv.URL

	if got := s.Fetch(context.Background(), "q", 5, model.LangEN); len(got) != 0 {
		t.Errorf("expected empty result without credentials, got %d articles", len(got))
	}
}
