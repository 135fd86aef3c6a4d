package views

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wikiquiz/db"
	"wikiquiz/models"
)

// HistoryReader is the part of the history service the page needs.
type HistoryReader interface {
	ListEntries(ctx context.Context, query string) ([]models.HistoryEntry, error)
	GetQuiz(ctx context.Context, id string) (*models.Quiz, error)
}

const (
	noticeQuizNotFound = "That quiz could not be found."
	noticeLoadFailed   = "The quiz could not be loaded. Please try again."
	createdLayout      = "Jan 2, 2006 at 3:04 PM"
)

// HistoryView lists past quizzes and holds the one open in the overlay.
type HistoryView struct {
	mu         sync.Mutex
	reader     HistoryReader
	query      string
	entries    []models.HistoryEntry
	selectedID string
	detail     *models.Quiz
	questions  []*QuestionView
	notice     string
}

func NewHistoryView(reader HistoryReader) *HistoryView {
	return &HistoryView{reader: reader}
}

func (v *HistoryView) Load(ctx context.Context, query string) error {
	entries, err := v.reader.ListEntries(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = query
	v.entries = entries
	return nil
}

// Select opens the overlay for id and loads that quiz. The overlay stays
// open with a notice when the quiz cannot be loaded.
func (v *HistoryView) Select(ctx context.Context, id string) error {
	v.mu.Lock()
	v.selectedID = id
	v.detail = nil
	v.questions = nil
	v.notice = ""
	v.mu.Unlock()

	quiz, err := v.reader.GetQuiz(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.selectedID != id {
		return nil
	}
	if err != nil {
		v.notice = noticeLoadFailed
		if errors.Is(err, db.ErrQuizNotFound) {
			v.notice = noticeQuizNotFound
		}
		return err
	}

	v.detail = quiz
	v.questions = newQuestionViews(quiz.Questions)
	return nil
}

func (v *HistoryView) Dismiss() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.selectedID = ""
	v.detail = nil
	v.questions = nil
	v.notice = ""
}

func (v *HistoryView) OverlayOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedID != ""
}

func (v *HistoryView) SelectedID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedID
}

func (v *HistoryView) Answer(index int, option string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	question, err := questionAt(v.questions, index)
	if err != nil {
		return false, err
	}
	return question.Select(option), nil
}

func (v *HistoryView) ToggleExplanation(index int) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	question, err := questionAt(v.questions, index)
	if err != nil {
		return false, err
	}
	return question.ToggleExplanation(), nil
}

type HistoryEntrySnapshot struct {
	ID            string
	Title         string
	SourceURL     string
	Created       string
	QuestionCount int
	Selected      bool
}

type HistorySnapshot struct {
	Query       string
	Entries     []HistoryEntrySnapshot
	OverlayOpen bool
	SelectedID  string
	Detail      *QuizSnapshot
	Notice      string
}

func (v *HistoryView) Snapshot() HistorySnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	entries := make([]HistoryEntrySnapshot, len(v.entries))
	for i, entry := range v.entries {
		entries[i] = HistoryEntrySnapshot{
			ID:            entry.ID,
			Title:         entry.Title,
			SourceURL:     entry.SourceURL,
			Created:       formatCreated(entry.CreatedAt),
			QuestionCount: entry.QuestionCount,
			Selected:      entry.ID == v.selectedID,
		}
	}

	return HistorySnapshot{
		Query:       v.query,
		Entries:     entries,
		OverlayOpen: v.selectedID != "",
		SelectedID:  v.selectedID,
		Detail:      snapshotQuiz(v.detail, v.questions),
		Notice:      v.notice,
	}
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(createdLayout)
}
