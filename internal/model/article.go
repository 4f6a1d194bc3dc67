package model

// Supported display languages. Every article in the pipeline is either
// English or Japanese; sources declare which variant a fetch covered.
const (
	LangEN = "en"
	LangJA = "ja"
)

// IsSupportedLanguage reports whether lang is one of the display languages.
func IsSupportedLanguage(lang string) bool {
	return lang == LangEN || lang == LangJA
}

// Article is the normalized record every source client produces. The JSON
// field names match the shape the web layer already consumes.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
	Language    string `json:"language"`
}

// TranslatedArticle is the bilingual output unit. Exactly one of the EN
// fields and one of the JA fields holds original text; the counterpart is a
// translation, a fallback copy on translation failure, or empty when the
// record was repackaged without translation. Fields are never absent.
type TranslatedArticle struct {
	TitleEN       string `json:"title_en"`
	TitleJA       string `json:"title_ja"`
	DescriptionEN string `json:"description_en"`
	DescriptionJA string `json:"description_ja"`
	URL           string `json:"url"`
	ImageURL      string `json:"urlToImage"`
	PublishedAt   string `json:"publishedAt"`
	Source        string `json:"source"`
	Lang          string `json:"lang"`
}
