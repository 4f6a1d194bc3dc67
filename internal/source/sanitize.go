package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripHTML flattens an HTML fragment into trimmed plain text. Some
// providers ship markup inside description fields.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
