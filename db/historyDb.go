package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"wikiquiz/models"

	_ "github.com/lib/pq"
)

var ErrQuizNotFound = errors.New("quiz not found")

type HistoryRepository interface {
	SaveQuiz(ctx context.Context, quiz *models.Quiz) error
	GetQuizByID(ctx context.Context, id string) (*models.Quiz, error)
	ListEntries(ctx context.Context) ([]models.HistoryEntry, error)
	DeleteQuiz(ctx context.Context, id string) error
}

type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(databaseURL string) (*PostgresHistoryRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresHistoryRepository{db: db}, nil
}

func (r *PostgresHistoryRepository) SaveQuiz(ctx context.Context, quiz *models.Quiz) error {
	sections, err := json.Marshal(quiz.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}
	entities, err := json.Marshal(quiz.Entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entities: %w", err)
	}
	relatedTopics, err := json.Marshal(quiz.RelatedTopics)
	if err != nil {
		return fmt.Errorf("failed to marshal related topics: %w", err)
	}
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}

	query := `
		INSERT INTO wikiquiz.quizzes (id, title, source_url, summary, sections, entities, related_topics, questions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			source_url = EXCLUDED.source_url,
			summary = EXCLUDED.summary,
			sections = EXCLUDED.sections,
			entities = EXCLUDED.entities,
			related_topics = EXCLUDED.related_topics,
			questions = EXCLUDED.questions`

	_, err = r.db.ExecContext(ctx, query,
		quiz.ID, quiz.Title, quiz.SourceURL, quiz.Summary,
		sections, entities, relatedTopics, questions, quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	return nil
}

func (r *PostgresHistoryRepository) GetQuizByID(ctx context.Context, id string) (*models.Quiz, error) {
	query := `
		SELECT id, title, source_url, summary, sections, entities, related_topics, questions, created_at
		FROM wikiquiz.quizzes
		WHERE id = $1`

	quiz := &models.Quiz{}
	var sections, entities, relatedTopics, questions []byte
	row := r.db.QueryRowContext(ctx, query, id)

	err := row.Scan(&quiz.ID, &quiz.Title, &quiz.SourceURL, &quiz.Summary,
		&sections, &entities, &relatedTopics, &questions, &quiz.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quiz with id %s: %w", id, ErrQuizNotFound)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	columns := []struct {
		name string
		data []byte
		dest any
	}{
		{"sections", sections, &quiz.Sections},
		{"entities", entities, &quiz.Entities},
		{"related_topics", relatedTopics, &quiz.RelatedTopics},
		{"questions", questions, &quiz.Questions},
	}
	for _, column := range columns {
		if err := json.Unmarshal(column.data, column.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", column.name, err)
		}
	}

	return quiz, nil
}

func (r *PostgresHistoryRepository) ListEntries(ctx context.Context) ([]models.HistoryEntry, error) {
	query := `
		SELECT id, title, source_url, created_at, jsonb_array_length(questions)
		FROM wikiquiz.quizzes
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.SourceURL, &entry.CreatedAt, &entry.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over quizzes: %w", err)
	}

	return entries, nil
}

func (r *PostgresHistoryRepository) DeleteQuiz(ctx context.Context, id string) error {
	query := "DELETE FROM wikiquiz.quizzes WHERE id = $1"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("quiz with id %s: %w", id, ErrQuizNotFound)
	}

	return nil
}

func (r *PostgresHistoryRepository) Close() error {
	return r.db.Close()
}
