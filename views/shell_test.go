package views

import (
	"testing"
	"time"

	"wikiquiz/models"

	"github.com/stretchr/testify/assert"
)

func TestNewShell(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		path           string
		expectedActive string
		notFound       bool
	}{
		{name: "generate page", path: "/", expectedActive: "Generate Quiz"},
		{name: "history page", path: "/history", expectedActive: "Past Quizzes"},
		{name: "unknown page", path: "/missing", notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell := NewShell(tt.path, now)

			assert.Equal(t, "WikiQuiz AI", shell.Brand)
			assert.Equal(t, "© 2026 AI Wiki Quiz Generator.", shell.Footer)
			assert.Equal(t, tt.notFound, shell.NotFound)

			active := ""
			for _, item := range shell.Nav {
				if item.Active {
					active = item.Label
				}
			}
			assert.Equal(t, tt.expectedActive, active)
		})
	}
}

func TestNewArticleSummary(t *testing.T) {
	quiz := &models.Quiz{
		Title:         "Photosynthesis",
		SourceURL:     "https://en.wikipedia.org/wiki/Photosynthesis",
		Summary:       "Plants make sugar.",
		Entities:      []string{"Chlorophyll"},
		RelatedTopics: []string{"Biology"},
		Sections:      []string{"Overview"},
	}

	summary := NewArticleSummary(quiz)
	quiz.Entities[0] = "changed"

	assert.Equal(t, "Photosynthesis", summary.Title)
	assert.Equal(t, []string{"Chlorophyll"}, summary.Entities)
	assert.Equal(t, []string{"Biology"}, summary.RelatedTopics)
	assert.Equal(t, []string{"Overview"}, summary.Sections)
}
