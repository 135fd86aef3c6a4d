package article

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "underscores", url: "https://en.wikipedia.org/wiki/Alan_Turing", expected: "Alan Turing"},
		{name: "single word", url: "https://en.wikipedia.org/wiki/Photosynthesis", expected: "Photosynthesis"},
		{name: "percent encoded", url: "https://fr.wikipedia.org/wiki/Caf%C3%A9_au_lait", expected: "Café au lait"},
		{name: "encoded slash kept", url: "https://en.wikipedia.org/wiki/AC%2FDC", expected: "AC/DC"},
		{name: "query ignored", url: "https://en.wikipedia.org/wiki/Renaissance_art?oldid=1", expected: "Renaissance art"},
		{name: "nothing after wiki", url: "https://en.wikipedia.org/wiki/", expected: DefaultTitle},
		{name: "no wiki segment", url: "https://example.com/page", expected: DefaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TitleFromURL(tt.url))
		})
	}
}

func TestMockSourceSentinelIsCanned(t *testing.T) {
	article, err := NewMockSource().Fetch(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	require.NoError(t, err)

	assert.Equal(t, SentinelTitle, article.Title)
	assert.Equal(t, cannedSummary, article.Summary)
	assert.Equal(t, cannedEntities, article.Entities)
	assert.Equal(t, cannedRelatedTopics, article.RelatedTopics)
	assert.Equal(t, cannedSections, article.Sections)
}

func TestMockSourceTemplatesOtherTitles(t *testing.T) {
	url := "https://en.wikipedia.org/wiki/Photosynthesis"
	article, err := NewMockSource().Fetch(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, "Photosynthesis", article.Title)
	assert.Equal(t, url, article.SourceURL)
	assert.Contains(t, article.Summary, "This article discusses Photosynthesis, a significant subject")
	assert.Contains(t, article.Summary, "lasting impact of Photosynthesis on modern society")
	assert.Equal(t, []string{"Photosynthesis", "Historical Context", "Major Impact", "Future Research", "Key figures"}, article.Entities)
	assert.Equal(t, cannedRelatedTopics, article.RelatedTopics)
}

func TestMockSourceDoesNotShareCannedSlices(t *testing.T) {
	first, err := NewMockSource().Fetch(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	require.NoError(t, err)
	first.Entities[0] = "mutated"

	second, err := NewMockSource().Fetch(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	require.NoError(t, err)
	assert.Equal(t, "Enigma Machine", second.Entities[0])
}

func TestMockSourceHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockSource().Fetch(ctx, "https://en.wikipedia.org/wiki/Alan_Turing")
	assert.ErrorIs(t, err, context.Canceled)
}
