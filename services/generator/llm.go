package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"wikiquiz/models"
	"wikiquiz/services/upstream"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

var questionTools = []llms.Tool{
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        emitQuestionsTool,
			Description: "Emit the finished multiple-choice questions for the article",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"questions": map[string]any{
						"type":        "array",
						"description": "The quiz questions",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"question": map[string]any{
									"type":        "string",
									"description": "The question text",
								},
								"options": map[string]any{
									"type":        "array",
									"description": "Distinct answer options in display order",
									"items":       map[string]any{"type": "string"},
									"minItems":    2,
								},
								"correct": map[string]any{
									"type":        "string",
									"description": "The correct answer; must equal one of the options exactly",
								},
								"difficulty": map[string]any{
									"type": "string",
									"enum": []string{"easy", "medium", "hard"},
								},
								"explanation": map[string]any{
									"type":        "string",
									"description": "Why the correct answer is correct",
								},
							},
							"required": []string{"question", "options", "correct", "difficulty", "explanation"},
						},
					},
				},
				"required": []string{"questions"},
			},
		},
	},
}

// LLMGenerator asks a langchaingo model for questions through a forced tool call.
type LLMGenerator struct {
	llm           llms.Model
	questionCount int
	logger        *zap.SugaredLogger
}

func NewLLMGenerator(llm llms.Model, questionCount int, logger *zap.SugaredLogger) *LLMGenerator {
	return &LLMGenerator{llm: llm, questionCount: questionCount, logger: logger}
}

func (g *LLMGenerator) Generate(ctx context.Context, article models.Article) ([]models.Question, error) {
	g.logger.Infof("Calling LLM for %d questions about %q", g.questionCount, article.Title)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, questionSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, buildQuestionPrompt(article, g.questionCount)),
	}

	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithTools(questionTools),
		llms.WithTemperature(0.7),
		llms.WithToolChoice("required"))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.Errorf("Failed to generate questions: %v", err)
		return nil, fmt.Errorf("failed to generate questions: %v: %w", err, upstream.ErrUnavailable)
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].ToolCalls) == 0 {
		g.logger.Errorf("No tool calls in LLM question response")
		return nil, fmt.Errorf("no tool calls in LLM question response: %w", upstream.ErrMalformedContent)
	}

	toolCall := resp.Choices[0].ToolCalls[0]
	if toolCall.FunctionCall == nil || toolCall.FunctionCall.Name != emitQuestionsTool {
		return nil, fmt.Errorf("unexpected tool call in LLM question response: %w", upstream.ErrMalformedContent)
	}

	var params EmitQuestionsParams
	if err := json.Unmarshal([]byte(toolCall.FunctionCall.Arguments), &params); err != nil {
		g.logger.Errorf("Failed to parse %s arguments: %v", emitQuestionsTool, err)
		return nil, fmt.Errorf("failed to parse %s arguments: %v: %w", emitQuestionsTool, err, upstream.ErrMalformedContent)
	}

	questions, err := params.toQuestions()
	if err != nil {
		g.logger.Errorf("LLM emitted invalid questions: %v", err)
		return nil, err
	}

	g.logger.Infof("Successfully generated %d questions about %q", len(questions), article.Title)
	return questions, nil
}
