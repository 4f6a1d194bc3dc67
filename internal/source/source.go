// Package source contains the article-search provider clients. Every client
// normalizes its provider's schema into model.Article and never surfaces a
// remote failure to the caller: one broken provider must not abort the
// aggregate query.
package source

import (
	"context"
	"strings"

	"dualnews/internal/model"
)

// Source is one external article-search provider.
type Source interface {
	// Name identifies the provider in logs.
	Name() string

	// Languages lists the language variants this provider should be queried
	// in. The aggregator issues one fetch per entry.
	Languages() []string

	// Fetch returns normalized articles for a provider-native query. Any
	// remote failure (HTTP status, timeout, malformed JSON, missing
	// credentials) is logged and yields an empty slice, never an error.
	Fetch(ctx context.Context, query string, pageSize int, language string) []model.Article
}

// BuildQuery joins keyword tokens into the AND-of-quoted-keywords form all
// providers accept, e.g. ["Apple","Watch"] -> `"Apple" AND "Watch"`.
func BuildQuery(keywords []string) string {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		quoted = append(quoted, `"`+k+`"`)
	}
	return strings.Join(quoted, " AND ")
}
