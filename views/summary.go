package views

import (
	"slices"
	"time"

	"wikiquiz/models"
)

// ArticleSummary is the read-only header shown above a quiz.
type ArticleSummary struct {
	Title         string
	SourceURL     string
	Summary       string
	Entities      []string
	RelatedTopics []string
	Sections      []string
}

func NewArticleSummary(quiz *models.Quiz) ArticleSummary {
	return ArticleSummary{
		Title:         quiz.Title,
		SourceURL:     quiz.SourceURL,
		Summary:       quiz.Summary,
		Entities:      slices.Clone(quiz.Entities),
		RelatedTopics: slices.Clone(quiz.RelatedTopics),
		Sections:      slices.Clone(quiz.Sections),
	}
}

type QuizSnapshot struct {
	ID        string
	Article   ArticleSummary
	Questions []QuestionSnapshot
	CreatedAt time.Time
}

func snapshotQuiz(quiz *models.Quiz, questions []*QuestionView) *QuizSnapshot {
	if quiz == nil {
		return nil
	}

	snapshots := make([]QuestionSnapshot, len(questions))
	for i, question := range questions {
		snapshots[i] = question.Snapshot(i)
	}
	return &QuizSnapshot{
		ID:        quiz.ID,
		Article:   NewArticleSummary(quiz),
		Questions: snapshots,
		CreatedAt: quiz.CreatedAt,
	}
}
