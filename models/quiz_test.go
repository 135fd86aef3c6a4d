package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  error
	}{
		{
			name:     "valid",
			question: Question{ID: 1, Options: []string{"A", "B"}, CorrectOption: "B"},
		},
		{
			name:     "single option",
			question: Question{ID: 2, Options: []string{"A"}, CorrectOption: "A"},
			wantErr:  ErrTooFewOptions,
		},
		{
			name:     "duplicate options",
			question: Question{ID: 3, Options: []string{"A", "B", "A"}, CorrectOption: "A"},
			wantErr:  ErrDuplicateOption,
		},
		{
			name:     "correct option missing",
			question: Question{ID: 4, Options: []string{"A", "B"}, CorrectOption: "C"},
			wantErr:  ErrCorrectNotInOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQuizEntryProjection(t *testing.T) {
	quiz := &Quiz{
		ID:        "quiz-1",
		Title:     "Photosynthesis",
		SourceURL: "https://en.wikipedia.org/wiki/Photosynthesis",
		Questions: []Question{{ID: 1}, {ID: 2}, {ID: 3}},
	}

	entry := quiz.Entry()

	assert.Equal(t, "quiz-1", entry.ID)
	assert.Equal(t, "Photosynthesis", entry.Title)
	assert.Equal(t, quiz.SourceURL, entry.SourceURL)
	assert.Equal(t, 3, entry.QuestionCount)
}

func TestDifficultyStyleIsTotal(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		style := d.Style()
		assert.NotEmpty(t, style.Label, "difficulty %d", d)
		assert.NotEmpty(t, style.Class, "difficulty %d", d)
	}
	assert.Equal(t, "difficulty-hard", DifficultyHard.Style().Class)
	assert.Equal(t, "difficulty-medium", Difficulty(42).Style().Class)
}

func TestDifficultyJSON(t *testing.T) {
	data, err := json.Marshal(Question{ID: 1, Difficulty: DifficultyMedium})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"difficulty":"medium"`)

	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"difficulty":"Hard"}`), &q))
	assert.Equal(t, DifficultyHard, q.Difficulty)

	assert.Error(t, json.Unmarshal([]byte(`{"difficulty":"impossible"}`), &q))
}
