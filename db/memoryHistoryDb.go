package db

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"wikiquiz/models"
)

// MemoryHistoryRepository keeps quizzes for the lifetime of the process.
type MemoryHistoryRepository struct {
	mu      sync.RWMutex
	quizzes map[string]*models.Quiz
}

func NewMemoryHistoryRepository(seed ...*models.Quiz) *MemoryHistoryRepository {
	r := &MemoryHistoryRepository{quizzes: make(map[string]*models.Quiz, len(seed))}
	for _, quiz := range seed {
		r.quizzes[quiz.ID] = quiz
	}
	return r
}

func (r *MemoryHistoryRepository) SaveQuiz(_ context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		return fmt.Errorf("failed to save quiz: empty id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *MemoryHistoryRepository) GetQuizByID(_ context.Context, id string) (*models.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, fmt.Errorf("quiz with id %s: %w", id, ErrQuizNotFound)
	}
	return quiz, nil
}

func (r *MemoryHistoryRepository) ListEntries(_ context.Context) ([]models.HistoryEntry, error) {
	r.mu.RLock()
	entries := make([]models.HistoryEntry, 0, len(r.quizzes))
	for _, quiz := range r.quizzes {
		entries = append(entries, quiz.Entry())
	}
	r.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (r *MemoryHistoryRepository) DeleteQuiz(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quizzes[id]; !ok {
		return fmt.Errorf("quiz with id %s: %w", id, ErrQuizNotFound)
	}
	delete(r.quizzes, id)
	return nil
}
