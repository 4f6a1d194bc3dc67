package news

import (
	"context"
	"sync"

	"dualnews/internal/cache"
	"dualnews/internal/metrics"
	"dualnews/internal/model"
)

// TranslationClient is the single-string translation boundary. An empty
// return value means the translation failed (or the input was empty).
type TranslationClient interface {
	Translate(ctx context.Context, text, targetLang string) string
}

// Translator maps filtered articles to bilingual records: skip when the
// source language already matches the target, serve repeats from cache, and
// fall back to the original text per field when translation fails.
type Translator struct {
	client      TranslationClient
	cache       *cache.Cache
	concurrency int
}

func NewTranslator(client TranslationClient, c *cache.Cache, concurrency int) *Translator {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Translator{client: client, cache: c, concurrency: concurrency}
}

// TranslateAll processes articles with bounded concurrency. The output is
// index-aligned with the input even though workers finish out of order.
func (t *Translator) TranslateAll(ctx context.Context, articles []model.Article, targetLang string) []model.TranslatedArticle {
	results := make([]model.TranslatedArticle, len(articles))

	var wg sync.WaitGroup
	sem := make(chan struct{}, t.concurrency)
	for i, a := range articles {
		wg.Add(1)
		go func(i int, a model.Article) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = t.translateOne(ctx, a, targetLang)
		}(i, a)
	}
	wg.Wait()

	return results
}

func (t *Translator) translateOne(ctx context.Context, a model.Article, targetLang string) model.TranslatedArticle {
	if cached, ok := t.cache.Get(a.URL, targetLang); ok {
		metrics.Global.IncrementCacheHits()
		return cached
	}

	sourceLang := a.Language
	if sourceLang == "" {
		sourceLang = model.LangEN
	}

	var result model.TranslatedArticle
	switch {
	case sourceLang == targetLang:
		// Already in the target language: repackage without a network call,
		// leaving the other-language slots empty.
		result = repackage(a, targetLang)

	case targetLang == model.LangJA:
		result = model.TranslatedArticle{
			TitleEN:       a.Title,
			TitleJA:       fallback(t.translateField(ctx, a.Title, model.LangJA), a.Title),
			DescriptionEN: a.Description,
			DescriptionJA: fallback(t.translateField(ctx, a.Description, model.LangJA), a.Description),
			URL:           a.URL,
			ImageURL:      a.ImageURL,
			PublishedAt:   a.PublishedAt,
			Source:        a.Source,
			Lang:          model.LangJA,
		}

	default:
		result = model.TranslatedArticle{
			TitleEN:       fallback(t.translateField(ctx, a.Title, model.LangEN), a.Title),
			TitleJA:       a.Title,
			DescriptionEN: fallback(t.translateField(ctx, a.Description, model.LangEN), a.Description),
			DescriptionJA: a.Description,
			URL:           a.URL,
			ImageURL:      a.ImageURL,
			PublishedAt:   a.PublishedAt,
			Source:        a.Source,
			Lang:          model.LangEN,
		}
	}

	t.cache.Set(a.URL, targetLang, result)
	return result
}

// translateField short-circuits empty source text and counts outcomes.
func (t *Translator) translateField(ctx context.Context, text, targetLang string) string {
	if text == "" {
		return ""
	}

	out := t.client.Translate(ctx, text, targetLang)
	if out == "" {
		metrics.Global.IncrementFailedTranslations()
		return ""
	}
	metrics.Global.IncrementSuccessfulTranslations()
	return out
}

// repackage places the original text in the slot matching its language.
func repackage(a model.Article, lang string) model.TranslatedArticle {
	ta := model.TranslatedArticle{
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		Source:      a.Source,
		Lang:        lang,
	}
	if lang == model.LangJA {
		ta.TitleJA = a.Title
		ta.DescriptionJA = a.Description
	} else {
		ta.TitleEN = a.Title
		ta.DescriptionEN = a.Description
	}
	return ta
}

// fallback returns the translation, or the original text when translation
// produced nothing. An empty original stays empty.
func fallback(translated, original string) string {
	if translated == "" {
		return original
	}
	return translated
}
