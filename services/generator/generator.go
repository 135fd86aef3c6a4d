package generator

import (
	"context"
	"fmt"

	"wikiquiz/models"
	"wikiquiz/services/upstream"
)

type Generator interface {
	Generate(ctx context.Context, article models.Article) ([]models.Question, error)
}

// QuestionPayload is the shape LLM providers are asked to emit for each question.
type QuestionPayload struct {
	Question    string   `json:"question" jsonschema:"required,description=The question text"`
	Options     []string `json:"options" jsonschema:"required,minItems=2,description=Distinct answer options in display order"`
	Correct     string   `json:"correct" jsonschema:"required,description=The correct answer; must equal one of the options exactly"`
	Difficulty  string   `json:"difficulty" jsonschema:"required,enum=easy,enum=medium,enum=hard"`
	Explanation string   `json:"explanation" jsonschema:"required,description=Why the correct answer is correct"`
}

type EmitQuestionsParams struct {
	Questions []QuestionPayload `json:"questions" jsonschema:"required,description=The quiz questions"`
}

func (p EmitQuestionsParams) toQuestions() ([]models.Question, error) {
	if len(p.Questions) == 0 {
		return nil, fmt.Errorf("no questions emitted: %w", upstream.ErrMalformedContent)
	}

	questions := make([]models.Question, 0, len(p.Questions))
	for i, payload := range p.Questions {
		difficulty, err := models.ParseDifficulty(payload.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("question %d: %v: %w", i+1, err, upstream.ErrMalformedContent)
		}

		question := models.Question{
			ID:            i + 1,
			Prompt:        payload.Question,
			Options:       payload.Options,
			CorrectOption: payload.Correct,
			Difficulty:    difficulty,
			Explanation:   payload.Explanation,
		}
		if err := question.Validate(); err != nil {
			return nil, fmt.Errorf("%v: %w", err, upstream.ErrMalformedContent)
		}
		questions = append(questions, question)
	}

	return questions, nil
}
