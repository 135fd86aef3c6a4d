package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wikiquiz/models"
	"wikiquiz/services/upstream"

	"github.com/samber/lo"
)

const (
	userAgent       = "WikiQuiz/1.0 (quiz generator)"
	maxEntities     = 8
	maxRelated      = 8
	categoryPrefix  = "Category:"
	defaultTimeout  = 15 * time.Second
	maxSectionLevel = 1
)

// WikipediaSource reads the lead section, outgoing links, categories and
// top-level section headings of an article through the MediaWiki action API.
type WikipediaSource struct {
	client *http.Client
	// Endpoint overrides https://<article host>/w/api.php when set.
	Endpoint string
}

func NewWikipediaSource(client *http.Client) *WikipediaSource {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &WikipediaSource{client: client}
}

type titled struct {
	Title string `json:"title"`
}

type queryResponse struct {
	Query struct {
		Pages []struct {
			Title      string   `json:"title"`
			Missing    bool     `json:"missing"`
			Invalid    bool     `json:"invalid"`
			Extract    string   `json:"extract"`
			Links      []titled `json:"links"`
			Categories []titled `json:"categories"`
		} `json:"pages"`
	} `json:"query"`
}

type parseResponse struct {
	Parse struct {
		Sections []struct {
			Line     string `json:"line"`
			TocLevel int    `json:"toclevel"`
		} `json:"sections"`
	} `json:"parse"`
}

func (s *WikipediaSource) Fetch(ctx context.Context, articleURL string) (models.Article, error) {
	endpoint, err := s.endpoint(articleURL)
	if err != nil {
		return models.Article{}, err
	}
	title := TitleFromURL(articleURL)

	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"redirects":     {"1"},
		"prop":          {"extracts|links|categories"},
		"exintro":       {"1"},
		"explaintext":   {"1"},
		"plnamespace":   {"0"},
		"pllimit":       {strconv.Itoa(maxEntities)},
		"cllimit":       {strconv.Itoa(maxRelated)},
		"clshow":        {"!hidden"},
		"titles":        {pageName(title)},
	}

	var query queryResponse
	if err := s.get(ctx, endpoint, params, &query); err != nil {
		return models.Article{}, err
	}

	if len(query.Query.Pages) == 0 {
		return models.Article{}, fmt.Errorf("no pages in response for %q: %w", title, upstream.ErrMalformedContent)
	}
	page := query.Query.Pages[0]
	if page.Missing || page.Invalid {
		return models.Article{}, fmt.Errorf("%q: %w", title, upstream.ErrNotFound)
	}
	summary := strings.TrimSpace(page.Extract)
	if summary == "" {
		return models.Article{}, fmt.Errorf("empty extract for %q: %w", title, upstream.ErrMalformedContent)
	}

	article := models.Article{
		Title:     lo.Ternary(page.Title != "", page.Title, title),
		SourceURL: articleURL,
		Summary:   summary,
		Entities: lo.Uniq(lo.FilterMap(page.Links, func(link titled, _ int) (string, bool) {
			return link.Title, link.Title != ""
		})),
		RelatedTopics: lo.Uniq(lo.FilterMap(page.Categories, func(category titled, _ int) (string, bool) {
			name := strings.TrimPrefix(category.Title, categoryPrefix)
			return name, name != ""
		})),
	}

	sections, err := s.sections(ctx, endpoint, article.Title)
	if err != nil {
		if ctx.Err() != nil {
			return models.Article{}, ctx.Err()
		}
		// Headings are decorative; the article is usable without them.
		sections = nil
	}
	article.Sections = sections

	return article, nil
}

func (s *WikipediaSource) sections(ctx context.Context, endpoint, title string) ([]string, error) {
	params := url.Values{
		"action":        {"parse"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"sections"},
		"page":          {pageName(title)},
	}

	var parsed parseResponse
	if err := s.get(ctx, endpoint, params, &parsed); err != nil {
		return nil, err
	}

	var sections []string
	for _, section := range parsed.Parse.Sections {
		if section.TocLevel <= maxSectionLevel && section.Line != "" {
			sections = append(sections, section.Line)
		}
	}
	return sections, nil
}

func (s *WikipediaSource) endpoint(articleURL string) (string, error) {
	if s.Endpoint != "" {
		return s.Endpoint, nil
	}
	u, err := url.Parse(articleURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("cannot derive api endpoint from %q: %w", articleURL, upstream.ErrMalformedContent)
	}
	return "https://" + u.Host + "/w/api.php", nil
}

func (s *WikipediaSource) get(ctx context.Context, endpoint string, params url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("wikipedia request timed out: %w", context.DeadlineExceeded)
		}
		return fmt.Errorf("wikipedia request failed: %v: %w", err, upstream.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("wikipedia returned %d: %w", resp.StatusCode, upstream.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("wikipedia returned %d: %w", resp.StatusCode, upstream.ErrRateLimited)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("wikipedia returned %d: %w", resp.StatusCode, upstream.ErrUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode wikipedia response: %v: %w", err, upstream.ErrMalformedContent)
	}
	return nil
}
