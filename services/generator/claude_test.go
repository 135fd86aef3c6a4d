package generator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wikiquiz/models"
	"wikiquiz/services/upstream"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClaudeServer(t *testing.T, status int, content string) *ClaudeGenerator {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var request map[string]any
		require.NoError(t, json.Unmarshal(body, &request))
		assert.NotEmpty(t, request["tools"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(content))
	}))
	t.Cleanup(server.Close)

	return NewClaudeGenerator("test-key", 2, zap.NewNop().Sugar(),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0))
}

func TestClaudeGeneratorParsesToolUse(t *testing.T) {
	content := `{
	  "id": "msg_1", "type": "message", "role": "assistant", "model": "claude-sonnet-4-20250514",
	  "content": [{"type": "tool_use", "id": "toolu_1", "name": "emit_quiz_questions", "input": ` + validArguments + `}],
	  "stop_reason": "tool_use", "stop_sequence": null,
	  "usage": {"input_tokens": 10, "output_tokens": 20}
	}`
	generator := newClaudeServer(t, http.StatusOK, content)

	questions, err := generator.Generate(context.Background(), models.Article{Title: "Photosynthesis"})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Chlorophyll", questions[1].CorrectOption)
}

func TestClaudeGeneratorWithoutToolUse(t *testing.T) {
	content := `{
	  "id": "msg_1", "type": "message", "role": "assistant", "model": "claude-sonnet-4-20250514",
	  "content": [{"type": "text", "text": "I cannot help with that."}],
	  "stop_reason": "end_turn", "stop_sequence": null,
	  "usage": {"input_tokens": 10, "output_tokens": 20}
	}`
	generator := newClaudeServer(t, http.StatusOK, content)

	_, err := generator.Generate(context.Background(), models.Article{Title: "Photosynthesis"})
	assert.ErrorIs(t, err, upstream.ErrMalformedContent)
}

func TestClaudeGeneratorRateLimited(t *testing.T) {
	generator := newClaudeServer(t, http.StatusTooManyRequests,
		`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)

	_, err := generator.Generate(context.Background(), models.Article{Title: "Photosynthesis"})
	assert.ErrorIs(t, err, upstream.ErrRateLimited)
}

func TestGenerateSchemaListsQuestions(t *testing.T) {
	schema := GenerateSchema[EmitQuestionsParams]()

	require.NotNil(t, schema.Properties)
	data, err := json.Marshal(schema.Properties)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"questions"`)
	assert.Contains(t, string(data), `"difficulty"`)
}
