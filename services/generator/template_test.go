package generator

import (
	"context"
	"strings"
	"testing"

	"wikiquiz/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, title string) []models.Question {
	t.Helper()
	questions, err := NewTemplateGenerator().Generate(context.Background(), models.Article{Title: title})
	require.NoError(t, err)
	return questions
}

func TestTemplateGeneratorSentinelIsVerbatim(t *testing.T) {
	questions := generate(t, "Alan Turing")

	assert.Equal(t, cannedQuestions, questions)
}

func TestTemplateGeneratorSubstitutesTitle(t *testing.T) {
	questions := generate(t, "Photosynthesis")

	require.Len(t, questions, NewTemplateGenerator().QuestionCount())
	assert.Equal(t, "Which concept did Photosynthesis propose as a model of a general-purpose computer?", questions[0].Prompt)
	assert.Equal(t, "Photosynthesis Machine", questions[0].CorrectOption)
	assert.Equal(t, "Photosynthesis", questions[1].CorrectOption)
	assert.Equal(t, "In which year was Photosynthesis prosecuted for homosexual acts?", questions[4].Prompt)
	assert.Contains(t, questions[2].Options, "The Photosynthesis")

	for _, question := range questions {
		for _, text := range append([]string{question.Prompt, question.CorrectOption, question.Explanation}, question.Options...) {
			assert.False(t, placeholderTokens.MatchString(text), "placeholder left in %q", text)
		}
		assert.NoError(t, question.Validate())
	}
}

func TestTemplateGeneratorKeepsOptionsDistinct(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{name: "title equals a distractor", title: "Pentagon"},
		{name: "title equals a lettered distractor", title: "IQ"},
		{name: "title containing a placeholder", title: "Enigma Machine"},
		{name: "title equals a year", title: "1952"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, question := range generate(t, tt.title) {
				assert.NoError(t, question.Validate())
				assert.Contains(t, question.Options, question.CorrectOption)
			}
		})
	}
}

func TestTemplateGeneratorCollisionFallsBack(t *testing.T) {
	questions := generate(t, "Pentagon")

	assert.Equal(t, []string{"Pentagon", "Pentagon (B)", "GCHQ", "MI6 Headquarters"}, questions[1].Options)
	assert.Equal(t, "Pentagon", questions[1].CorrectOption)
}

func TestTemplateGeneratorDoesNotMutateCannedQuestions(t *testing.T) {
	questions := generate(t, "Alan Turing")
	questions[0].Options[0] = "changed"

	assert.Equal(t, "Turing Machine", cannedQuestions[0].Options[0])
}

func TestSubstituteLeftmostFirst(t *testing.T) {
	assert.Equal(t, "In which year was X prosecuted", substitute("In which year was Alan Turing prosecuted", "X"))
	assert.Equal(t, "X and X", substitute("Enigma and Bletchley Park", "X"))
	assert.Equal(t, "cost $1", substitute("cost Turing", "$1"), "replacement is literal")
	assert.False(t, strings.Contains(substitute("Turing Turing", "Y"), "Turing"))
}
