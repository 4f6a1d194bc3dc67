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

const gnewsBaseURL = "https://gnews.io/api/v4/search"

// GNews searches gnews.io in both display languages. The in=title parameter
// narrows matching to titles, which lines up with the strict title filter
// applied downstream.
type GNews struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGNews(apiKey string, timeout time.Duration) *GNews {
	return &GNews{
		apiKey:  apiKey,
		baseURL: gnewsBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *GNews) Name() string { return "gnews" }

func (s *GNews) Languages() []string { return []string{model.LangEN, model.LangJA} }

func (s *GNews) Fetch(ctx context.Context, query string, pageSize int, language string) []model.Article {
	if s.apiKey == "" {
		logger.Warn("gnews key not configured, skipping fetch")
		return nil
	}

	lang := language
	if !model.IsSupportedLanguage(lang) {
		lang = model.LangEN
	}

	params := url.Values{
		"apikey": {s.apiKey},
		"q":      {query},
		"lang":   {lang},
		"max":    {strconv.Itoa(pageSize)},
		"in":     {"title"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logger.Error("gnews request build failed", "error", err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("gnews request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("gnews returned error status", "status", resp.StatusCode)
		return nil
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Image       string `json:"image"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Error("gnews response decode failed", "error", err)
		return nil
	}

	articles := make([]model.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		art := model.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: stripHTML(a.Description),
			URL:         strings.TrimSpace(a.URL),
			ImageURL:    strings.TrimSpace(a.Image),
			PublishedAt: strings.TrimSpace(a.PublishedAt),
			Source:      strings.TrimSpace(a.Source.Name),
			Language:    language,
		}
		if art.Title == "" || art.URL == "" {
			continue
		}
		articles = append(articles, art)
	}

	logger.Debug("gnews fetch complete", "count", len(articles), "lang", lang, "query", query)
	return articles
}
