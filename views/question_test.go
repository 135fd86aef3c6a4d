package views

import (
	"testing"

	"wikiquiz/models"

	"github.com/stretchr/testify/assert"
)

func sampleQuestion() models.Question {
	return models.Question{
		ID:            1,
		Prompt:        "Where did Turing work during the war?",
		Options:       []string{"Bletchley Park", "Pentagon", "GCHQ", "MI6 Headquarters"},
		CorrectOption: "Bletchley Park",
		Difficulty:    models.DifficultyEasy,
		Explanation:   "Bletchley Park was the codebreaking centre.",
	}
}

func countMarks(v *QuestionView, options []string) map[OptionMark]int {
	counts := make(map[OptionMark]int)
	for _, option := range options {
		counts[v.Mark(option)]++
	}
	return counts
}

func TestQuestionViewMarks(t *testing.T) {
	tests := []struct {
		name              string
		selection         string
		expectedCorrect   int
		expectedIncorrect int
		expectedMuted     int
	}{
		{name: "correct answer", selection: "Bletchley Park", expectedCorrect: 1, expectedIncorrect: 0, expectedMuted: 3},
		{name: "wrong answer", selection: "GCHQ", expectedCorrect: 1, expectedIncorrect: 1, expectedMuted: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question := sampleQuestion()
			view := NewQuestionView(question)

			assert.Equal(t, 4, countMarks(view, question.Options)[MarkNone])
			assert.True(t, view.Select(tt.selection))

			counts := countMarks(view, question.Options)
			assert.Equal(t, tt.expectedCorrect, counts[MarkCorrect])
			assert.Equal(t, tt.expectedIncorrect, counts[MarkIncorrect])
			assert.Equal(t, tt.expectedMuted, counts[MarkMuted])
			assert.Equal(t, MarkCorrect, view.Mark("Bletchley Park"))
		})
	}
}

func TestQuestionViewFirstSelectionSticks(t *testing.T) {
	view := NewQuestionView(sampleQuestion())

	assert.True(t, view.Select("Pentagon"))
	assert.False(t, view.Select("Bletchley Park"))

	selected, answered := view.Selected()
	assert.True(t, answered)
	assert.Equal(t, "Pentagon", selected)
	assert.False(t, view.Correct())
	assert.Equal(t, MarkIncorrect, view.Mark("Pentagon"))
}

func TestQuestionViewIgnoresUnknownOption(t *testing.T) {
	view := NewQuestionView(sampleQuestion())

	assert.False(t, view.Select("Kremlin"))
	assert.False(t, view.Answered())
}

func TestQuestionViewExplanationToggle(t *testing.T) {
	view := NewQuestionView(sampleQuestion())

	assert.False(t, view.ExplanationVisible())
	assert.False(t, view.ToggleExplanation())

	view.Select("Bletchley Park")
	assert.True(t, view.ExplanationVisible())
	assert.True(t, view.ExplanationExpanded())

	assert.True(t, view.ToggleExplanation())
	assert.False(t, view.ExplanationExpanded())
	assert.True(t, view.ExplanationVisible())

	assert.True(t, view.ToggleExplanation())
	assert.True(t, view.ExplanationExpanded())
}

func TestQuestionViewSnapshot(t *testing.T) {
	view := NewQuestionView(sampleQuestion())

	before := view.Snapshot(2)
	assert.Equal(t, 3, before.Number)
	assert.Equal(t, "difficulty-easy", before.Difficulty.Class)
	assert.False(t, before.ShowExplanation)

	labels := make([]string, 0, len(before.Options))
	for _, option := range before.Options {
		labels = append(labels, option.Label)
		assert.True(t, option.Selectable)
		assert.Equal(t, "option", option.Mark.Class())
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, labels)

	view.Select("MI6 Headquarters")
	after := view.Snapshot(2)
	assert.True(t, after.Answered)
	assert.False(t, after.Correct)
	assert.True(t, after.ShowExplanation)
	assert.True(t, after.ExplanationExpanded)
	assert.Equal(t, "option option-correct", after.Options[0].Mark.Class())
	assert.Equal(t, "option option-incorrect", after.Options[3].Mark.Class())
	assert.False(t, after.Options[1].Selectable)
}
