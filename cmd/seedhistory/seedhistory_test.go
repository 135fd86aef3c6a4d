package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"wikiquiz/db"
	"wikiquiz/services"
	"wikiquiz/services/article"
	"wikiquiz/services/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReadURLs(t *testing.T) {
	input := `
https://en.wikipedia.org/wiki/Alan_Turing
# comment
   https://en.wikipedia.org/wiki/Photosynthesis   
`
	urls, err := readURLs(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Alan_Turing",
		"https://en.wikipedia.org/wiki/Photosynthesis",
	}, urls)
}

func TestSeedReportsEachURL(t *testing.T) {
	logger := zap.NewNop().Sugar()
	history := services.NewHistoryService(db.NewMemoryHistoryRepository(), logger)
	quizzes := services.NewQuizService(article.NewMockSource(), generator.NewTemplateGenerator(), history, logger,
		services.WithDelay(0))

	var out bytes.Buffer
	failed := seed(context.Background(), quizzes, []string{
		"https://en.wikipedia.org/wiki/Alan_Turing",
		"not-a-url",
		"https://en.wikipedia.org/wiki/Renaissance_art",
	}, &out, logger)

	assert.Equal(t, 1, failed)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "OK   https://en.wikipedia.org/wiki/Alan_Turing"))
	assert.True(t, strings.HasPrefix(lines[1], "FAIL not-a-url"))
	assert.Contains(t, lines[2], `"Renaissance art", 5 questions`)

	entries, err := history.ListEntries(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
