package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *AnswerService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewAnswerService(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return svc
}

func TestGenerate_Success(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		messages := req["messages"].([]any)
		content := messages[0].(map[string]any)["content"].(string)
		assert.Contains(t, content, "Question: what drives churn?")
		assert.Contains(t, content, "Context: doc A")

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Service calls.\n"}},
			},
		})
	})

	answer, err := svc.Generate(context.Background(), "what drives churn?", "doc A")
	require.NoError(t, err)
	assert.Equal(t, "Service calls.", answer)
}

func TestGenerate_APIError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited", "type": "rate_limit"},
		})
	})

	_, err := svc.Generate(context.Background(), "q", "c")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
}

func TestGenerate_NoChoices(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := svc.Generate(context.Background(), "q", "c")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
}

func TestNewAnswerService_RequiresAPIKey(t *testing.T) {
	_, err := NewAnswerService(Config{})
	require.Error(t, err)
}
