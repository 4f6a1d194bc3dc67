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

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPI searches newsapi.org. The everything endpoint is only queried in
// English; its Japanese coverage is too thin to be worth a second variant.
type NewsAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewNewsAPI(apiKey string, timeout time.Duration) *NewsAPI {
	return &NewsAPI{
		apiKey:  apiKey,
		baseURL: newsAPIBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *NewsAPI) Name() string { return "newsapi" }

func (s *NewsAPI) Languages() []string { return []string{model.LangEN} }

func (s *NewsAPI) Fetch(ctx context.Context, query string, pageSize int, language string) []model.Article {
	if s.apiKey == "" {
		logger.Warn("newsapi key not configured, skipping fetch")
		return nil
	}

	now := time.Now().UTC()
	const timeFmt = "2006-01-02T15:04:05Z"
	params := url.Values{
		"q":        {query},
		"from":     {now.AddDate(0, 0, -7).Format(timeFmt)},
		"to":       {now.Format(timeFmt)},
		"sortBy":   {"relevancy"},
		"pageSize": {strconv.Itoa(pageSize)},
		"apiKey":   {s.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logger.Error("newsapi request build failed", "error", err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("newsapi request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("newsapi returned error status", "status", resp.StatusCode)
		return nil
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			URLToImage  string `json:"urlToImage"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Error("newsapi response decode failed", "error", err)
		return nil
	}

	articles := make([]model.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		art := model.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: stripHTML(a.Description),
			URL:         strings.TrimSpace(a.URL),
			ImageURL:    strings.TrimSpace(a.URLToImage),
			PublishedAt: strings.TrimSpace(a.PublishedAt),
			Source:      strings.TrimSpace(a.Source.Name),
			Language:    language,
		}
		if art.Title == "" || art.URL == "" {
			continue
		}
		articles = append(articles, art)
	}

	logger.Debug("newsapi fetch complete", "count", len(articles), "query", query)
	return articles
}
