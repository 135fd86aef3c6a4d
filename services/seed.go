package services

import (
	"context"
	"fmt"
	"time"

	"wikiquiz/models"
	"wikiquiz/services/article"
	"wikiquiz/services/generator"
)

var seedHistory = []struct {
	id        string
	url       string
	createdAt time.Time
}{
	{"quiz-123", "https://en.wikipedia.org/wiki/Alan_Turing", time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)},
	{"quiz-456", "https://en.wikipedia.org/wiki/Photosynthesis", time.Date(2024, 1, 14, 9, 15, 0, 0, time.UTC)},
	{"quiz-789", "https://en.wikipedia.org/wiki/Renaissance_art", time.Date(2024, 1, 12, 16, 45, 0, 0, time.UTC)},
}

// SeedQuizzes builds the demo history from the canned article and template.
func SeedQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	source := article.NewMockSource()
	gen := generator.NewTemplateGenerator()

	quizzes := make([]*models.Quiz, 0, len(seedHistory))
	for _, seed := range seedHistory {
		art, err := source.Fetch(ctx, seed.url)
		if err != nil {
			return nil, fmt.Errorf("failed to build seed article %s: %w", seed.url, err)
		}

		questions, err := gen.Generate(ctx, art)
		if err != nil {
			return nil, fmt.Errorf("failed to build seed questions for %q: %w", art.Title, err)
		}

		quizzes = append(quizzes, assembleQuiz(seed.id, art, questions, seed.createdAt))
	}
	return quizzes, nil
}
