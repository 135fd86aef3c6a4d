package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTooFewOptions      = errors.New("question needs at least two options")
	ErrDuplicateOption    = errors.New("question options must be unique")
	ErrCorrectNotInOption = errors.New("correct option is not one of the options")
)

type Quiz struct {
	ID            string     `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	SourceURL     string     `json:"url" db:"source_url"`
	Summary       string     `json:"summary" db:"summary"`
	Sections      []string   `json:"sections" db:"sections"`
	Entities      []string   `json:"entities" db:"entities"`
	RelatedTopics []string   `json:"related_topics" db:"related_topics"`
	Questions     []Question `json:"questions" db:"questions"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

type Question struct {
	ID            int        `json:"id"`
	Prompt        string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectOption string     `json:"correct"`
	Difficulty    Difficulty `json:"difficulty"`
	Explanation   string     `json:"explanation"`
}

// Validate checks the option invariants every rendered question relies on.
func (q Question) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d: %w", q.ID, ErrTooFewOptions)
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, option := range q.Options {
		if _, ok := seen[option]; ok {
			return fmt.Errorf("question %d: %w: %q", q.ID, ErrDuplicateOption, option)
		}
		seen[option] = struct{}{}
	}

	if _, ok := seen[q.CorrectOption]; !ok {
		return fmt.Errorf("question %d: %w: %q", q.ID, ErrCorrectNotInOption, q.CorrectOption)
	}

	return nil
}

func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz %q has no questions", q.Title)
	}
	for _, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Entry projects the quiz onto its history listing row.
func (q *Quiz) Entry() HistoryEntry {
	return HistoryEntry{
		ID:            q.ID,
		Title:         q.Title,
		SourceURL:     q.SourceURL,
		CreatedAt:     q.CreatedAt,
		QuestionCount: len(q.Questions),
	}
}

type GenerateQuizRequest struct {
	URL string `json:"url" validate:"required,url,wikiarticle"`
}

type GenerateQuizResponse struct {
	Quiz         *Quiz         `json:"quiz"`
	Notification *Notification `json:"notification"`
}
