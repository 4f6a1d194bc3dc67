// Package news implements the aggregation pipeline: concurrent fetch across
// all providers, merge, URL deduplication, strict title filtering and
// parallel translation of the surviving articles.
package news

import (
	"context"
	"strings"
	"sync"
	"time"

	"dualnews/internal/logger"
	"dualnews/internal/metrics"
	"dualnews/internal/model"
	"dualnews/internal/source"
)

// Aggregator owns the provider list and the translator and exposes the one
// operation the web layer consumes.
type Aggregator struct {
	sources    []source.Source
	translator *Translator
}

func NewAggregator(sources []source.Source, translator *Translator) *Aggregator {
	return &Aggregator{sources: sources, translator: translator}
}

// fetchTask pairs a provider with the explicit language variant it is
// queried in. The tag travels with the task so result language is never
// inferred from list position.
type fetchTask struct {
	src  source.Source
	lang string
}

// GetTranslatedArticles runs the full pipeline for a free-text query and
// always returns a (possibly empty) slice, never an error: provider and
// translation failures degrade individual results instead of failing the
// aggregate call.
func (a *Aggregator) GetTranslatedArticles(ctx context.Context, query string, pageSize int, targetLang string) []model.TranslatedArticle {
	start := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return []model.TranslatedArticle{}
	}
	if !model.IsSupportedLanguage(targetLang) {
		targetLang = model.LangJA
	}
	apiQuery := source.BuildQuery(keywords)

	var tasks []fetchTask
	for _, s := range a.sources {
		for _, lang := range s.Languages() {
			tasks = append(tasks, fetchTask{src: s, lang: lang})
		}
	}

	// Fan out one fetch per task and join on all of them. A failing
	// provider contributes an empty slice; siblings are never cancelled.
	results := make([][]model.Article, len(tasks))
	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func(i int, t fetchTask) {
			defer wg.Done()
			articles := t.src.Fetch(ctx, apiQuery, pageSize, t.lang)
			for j := range articles {
				if articles[j].Language == "" {
					articles[j].Language = t.lang
				}
			}
			results[i] = articles
		}(i, t)
	}
	wg.Wait()

	var merged []model.Article
	for _, r := range results {
		merged = append(merged, r...)
	}
	metrics.Global.AddArticlesFetched(len(merged))

	deduped := dedupByURL(merged)
	filtered := filterByTitle(deduped, keywords)
	metrics.Global.AddTitleFiltered(len(deduped) - len(filtered))

	logger.Info("aggregation complete",
		"query", query, "fetched", len(merged), "unique", len(deduped), "matched", len(filtered))

	if len(filtered) == 0 {
		return []model.TranslatedArticle{}
	}

	return a.translator.TranslateAll(ctx, filtered, targetLang)
}

// dedupByURL keeps the first occurrence of every URL in merge order. Exact
// string equality only: no normalization of casing, trailing slashes or
// query parameters.
func dedupByURL(articles []model.Article) []model.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if _, dup := seen[a.URL]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}
	return out
}

// filterByTitle keeps articles whose title contains every keyword as a
// case-insensitive substring. An empty title matches nothing.
func filterByTitle(articles []model.Article, keywords []string) []model.Article {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}

	out := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		title := strings.ToLower(a.Title)
		match := true
		for _, k := range lowered {
			if !strings.Contains(title, k) {
				match = false
				break
			}
		}
		if match {
			out = append(out, a)
		}
	}
	return out
}
