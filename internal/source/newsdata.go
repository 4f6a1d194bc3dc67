package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dualnews/internal/logger"
	"dualnews/internal/model"
)

const newsDataBaseURL = "https://newsdata.io/api/1/news"

// NewsData searches newsdata.io in both display languages and maps its
// field names (link, image_url, pubDate, source_id) onto the common schema.
type NewsData struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewNewsData(apiKey string, timeout time.Duration) *NewsData {
	return &NewsData{
		apiKey:  apiKey,
		baseURL: newsDataBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *NewsData) Name() string { return "newsdata" }

func (s *NewsData) Languages() []string { return []string{model.LangEN, model.LangJA} }

func (s *NewsData) Fetch(ctx context.Context, query string, pageSize int, language string) []model.Article {
	if s.apiKey == "" {
		logger.Warn("newsdata key not configured, skipping fetch")
		return nil
	}

	params := url.Values{
		"apikey":   {s.apiKey},
		"q":        {query},
		"language": {language},
		"size":     {strconv.Itoa(pageSize)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logger.Error("newsdata request build failed", "error", err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("newsdata request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("newsdata returned error status", "status", resp.StatusCode)
		return nil
	}

	var payload struct {
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Link        string `json:"link"`
			ImageURL    string `json:"image_url"`
			PubDate     string `json:"pubDate"`
			SourceID    string `json:"source_id"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Error("newsdata response decode failed", "error", err)
		return nil
	}

	articles := make([]model.Article, 0, len(payload.Results))
	for _, a := range payload.Results {
		art := model.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: stripHTML(a.Description),
			URL:         strings.TrimSpace(a.Link),
			ImageURL:    strings.TrimSpace(a.ImageURL),
			PublishedAt: strings.TrimSpace(a.PubDate),
			Source:      strings.TrimSpace(a.SourceID),
			Language:    language,
		}
		if art.Title == "" || art.URL == "" {
			continue
		}
		articles = append(articles, art)
	}

	logger.Debug("newsdata fetch complete", "count", len(articles), "lang", language, "query", query)
	return articles
}
