package services

import (
	"context"
	"fmt"
	"strings"

	"wikiquiz/db"
	"wikiquiz/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"
)

type HistoryService struct {
	repo   db.HistoryRepository
	logger *zap.SugaredLogger
}

func NewHistoryService(repo db.HistoryRepository, logger *zap.SugaredLogger) *HistoryService {
	return &HistoryService{repo: repo, logger: logger}
}

// ListEntries returns the history newest first, filtered by query when it is
// not blank.
func (s *HistoryService) ListEntries(ctx context.Context, query string) ([]models.HistoryEntry, error) {
	s.logger.Infof("Starting history listing with query %q", query)

	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		s.logger.Errorf("Failed to list history entries: %v", err)
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	searchTerms := strings.Fields(query)
	if len(searchTerms) == 0 {
		s.logger.Infof("No search terms provided, returning all %d entries", len(entries))
		return entries, nil
	}

	matching := make([]models.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entryMatchesSearch(entry, searchTerms) {
			matching = append(matching, entry)
		}
	}

	s.logger.Infof("Found %d history entries matching %q", len(matching), query)
	return matching, nil
}

func (s *HistoryService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	s.logger.Infof("Starting get quiz by ID %s", id)

	if strings.TrimSpace(id) == "" {
		s.logger.Errorf("Invalid quiz ID provided: %q", id)
		return nil, fmt.Errorf("invalid quiz ID %q: %w", id, db.ErrQuizNotFound)
	}

	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		s.logger.Errorf("Failed to get quiz by ID %s: %v", id, err)
		return nil, err
	}

	s.logger.Infof("Successfully retrieved quiz with ID %s", id)
	return quiz, nil
}

func (s *HistoryService) SaveQuiz(ctx context.Context, quiz *models.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("quiz cannot be nil")
	}
	s.logger.Infof("Starting save quiz %s (%q)", quiz.ID, quiz.Title)

	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		s.logger.Errorf("Failed to save quiz %s: %v", quiz.ID, err)
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	s.logger.Infof("Successfully saved quiz with ID %s", quiz.ID)
	return nil
}

func (s *HistoryService) DeleteQuiz(ctx context.Context, id string) error {
	s.logger.Infof("Starting delete quiz with ID %s", id)

	if strings.TrimSpace(id) == "" {
		s.logger.Errorf("Invalid quiz ID provided for deletion: %q", id)
		return fmt.Errorf("invalid quiz ID %q: %w", id, db.ErrQuizNotFound)
	}

	if err := s.repo.DeleteQuiz(ctx, id); err != nil {
		s.logger.Errorf("Failed to delete quiz %s: %v", id, err)
		return err
	}

	s.logger.Infof("Successfully deleted quiz with ID %s", id)
	return nil
}

// entryMatchesSearch requires every term to match the title, either as a
// fuzzy subsequence or as a word within a small edit distance.
func entryMatchesSearch(entry models.HistoryEntry, searchTerms []string) bool {
	if entry.Title == "" {
		return false
	}

	words := make([]string, 0)
	for _, word := range strings.Fields(entry.Title) {
		if clean := strings.Trim(word, ".,!?;:()[]{}\"'"); clean != "" {
			words = append(words, clean)
		}
	}

	for _, term := range searchTerms {
		if fuzzy.MatchFold(term, entry.Title) {
			continue
		}
		if len(term) > 3 && withinTypoDistance(term, words) {
			continue
		}
		return false
	}
	return true
}

const maxTypoDistance = 2

func withinTypoDistance(term string, words []string) bool {
	term = strings.ToLower(term)
	for _, word := range words {
		if fuzzy.LevenshteinDistance(term, strings.ToLower(word)) <= maxTypoDistance {
			return true
		}
	}
	return false
}
