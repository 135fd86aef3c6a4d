package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"wikiquiz/models"
	"wikiquiz/services/upstream"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/invopop/jsonschema"
	"go.uber.org/zap"
)

// ClaudeGenerator asks Anthropic's Messages API for questions through a tool call.
type ClaudeGenerator struct {
	client        *anthropic.Client
	questionCount int
	logger        *zap.SugaredLogger
}

func NewClaudeGenerator(apiKey string, questionCount int, logger *zap.SugaredLogger, opts ...option.RequestOption) *ClaudeGenerator {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(opts...)

	return &ClaudeGenerator{
		client:        &client,
		questionCount: questionCount,
		logger:        logger,
	}
}

func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

func (g *ClaudeGenerator) Generate(ctx context.Context, article models.Article) ([]models.Question, error) {
	g.logger.Infof("Calling Anthropic for %d questions about %q", g.questionCount, article.Title)

	response, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: 4096,
		System:    []anthropic.TextBlockParam{{Text: questionSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildQuestionPrompt(article, g.questionCount))),
		},
		Tools: []anthropic.ToolUnionParam{
			{
				OfTool: &anthropic.ToolParam{
					Name:        emitQuestionsTool,
					Description: anthropic.String("Emit the finished multiple-choice questions for the article"),
					InputSchema: GenerateSchema[EmitQuestionsParams](),
				},
			},
		},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: emitQuestionsTool},
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.Errorf("Failed to call Anthropic API: %v", err)
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("failed to call Anthropic API: %v: %w", err, upstream.ErrRateLimited)
		}
		return nil, fmt.Errorf("failed to call Anthropic API: %v: %w", err, upstream.ErrUnavailable)
	}

	for _, block := range response.Content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || toolUse.Name != emitQuestionsTool {
			continue
		}

		inputJSON, err := json.Marshal(toolUse.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s input: %v: %w", emitQuestionsTool, err, upstream.ErrMalformedContent)
		}

		var params EmitQuestionsParams
		if err := json.Unmarshal(inputJSON, &params); err != nil {
			g.logger.Errorf("Failed to parse %s input: %v", emitQuestionsTool, err)
			return nil, fmt.Errorf("failed to parse %s input: %v: %w", emitQuestionsTool, err, upstream.ErrMalformedContent)
		}

		questions, err := params.toQuestions()
		if err != nil {
			g.logger.Errorf("Anthropic emitted invalid questions: %v", err)
			return nil, err
		}

		g.logger.Infof("Successfully generated %d questions about %q", len(questions), article.Title)
		return questions, nil
	}

	g.logger.Errorf("No %s tool use in Anthropic response (stop reason %s)", emitQuestionsTool, response.StopReason)
	return nil, fmt.Errorf("no tool use in Anthropic response: %w", upstream.ErrMalformedContent)
}
