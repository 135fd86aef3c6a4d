package article

import (
	"context"
	"net/url"
	"strings"

	"wikiquiz/models"
)

const (
	// SentinelTitle is the article the canned quiz was written for.
	SentinelTitle = "Alan Turing"
	DefaultTitle  = "Generated Article"
)

type Source interface {
	Fetch(ctx context.Context, articleURL string) (models.Article, error)
}

// TitleFromURL derives a display title from everything after the first
// "/wiki/" in the path, percent-decoded with underscores read as spaces.
func TitleFromURL(articleURL string) string {
	escaped := strings.TrimSpace(articleURL)
	if u, err := url.Parse(escaped); err == nil {
		escaped = u.EscapedPath()
	}

	_, rest, found := strings.Cut(escaped, "/wiki/")
	if !found {
		return DefaultTitle
	}

	decoded, err := url.PathUnescape(rest)
	if err != nil {
		decoded = rest
	}

	title := strings.TrimSpace(strings.ReplaceAll(decoded, "_", " "))
	if title == "" {
		return DefaultTitle
	}
	return title
}

// pageName is the title as it appears in MediaWiki API requests.
func pageName(title string) string {
	return strings.ReplaceAll(title, " ", "_")
}
