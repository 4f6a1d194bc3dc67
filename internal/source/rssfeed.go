package source

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"dualnews/internal/logger"
	"dualnews/internal/model"
)

// FeedConfig describes one RSS feed and the language of its content.
type FeedConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
	Lang string `yaml:"lang"`
}

type feedsFile struct {
	Feeds []FeedConfig `yaml:"feeds"`
}

// LoadFeeds reads the RSS feeds list from a YAML file.
func LoadFeeds(path string) ([]FeedConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg feedsFile
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	feeds := make([]FeedConfig, 0, len(cfg.Feeds))
	for _, fc := range cfg.Feeds {
		if fc.URL == "" {
			continue
		}
		if !model.IsSupportedLanguage(fc.Lang) {
			fc.Lang = model.LangEN
		}
		feeds = append(feeds, fc)
	}
	return feeds, nil
}

// RSSFeeds is an optional provider backed by a fixed list of feeds. Feeds
// have no query parameter, so matching is left entirely to the strict title
// filter downstream; this source only contributes candidates.
type RSSFeeds struct {
	feeds  []FeedConfig
	parser *gofeed.Parser
}

func NewRSSFeeds(feeds []FeedConfig, timeout time.Duration) *RSSFeeds {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &RSSFeeds{feeds: feeds, parser: parser}
}

func (s *RSSFeeds) Name() string { return "rss" }

// Languages returns the distinct languages declared by the configured feeds,
// so the aggregator fans out once per language actually present.
func (s *RSSFeeds) Languages() []string {
	seen := make(map[string]struct{}, 2)
	var langs []string
	for _, f := range s.feeds {
		if _, ok := seen[f.Lang]; ok {
			continue
		}
		seen[f.Lang] = struct{}{}
		langs = append(langs, f.Lang)
	}
	return langs
}

func (s *RSSFeeds) Fetch(ctx context.Context, query string, pageSize int, language string) []model.Article {
	var articles []model.Article

	for _, fc := range s.feeds {
		if fc.Lang != language {
			continue
		}

		feed, err := s.parser.ParseURLWithContext(fc.URL, ctx)
		if err != nil {
			logger.Error("rss feed parse failed", "url", fc.URL, "error", err)
			continue
		}

		name := fc.Name
		if name == "" {
			name = feed.Title
		}

		count := 0
		for _, item := range feed.Items {
			if count >= pageSize {
				break
			}

			var image string
			if item.Image != nil {
				image = item.Image.URL
			}

			art := model.Article{
				Title:       strings.TrimSpace(item.Title),
				Description: stripHTML(item.Description),
				URL:         strings.TrimSpace(item.Link),
				ImageURL:    strings.TrimSpace(image),
				PublishedAt: strings.TrimSpace(item.Published),
				Source:      name,
				Language:    fc.Lang,
			}
			if art.Title == "" || art.URL == "" {
				continue
			}
			articles = append(articles, art)
			count++
		}
	}

	logger.Debug("rss fetch complete", "count", len(articles), "lang", language)
	return articles
}
