package models

import "time"

type HistoryEntry struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	SourceURL     string    `json:"url" db:"source_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	QuestionCount int       `json:"question_count" db:"question_count"`
}
