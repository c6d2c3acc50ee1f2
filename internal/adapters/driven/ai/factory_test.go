package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnlens/churnlens-cli/internal/adapters/driven/config/file"
)

func TestCreateEmbeddingService(t *testing.T) {
	t.Run("defaults to openai", func(t *testing.T) {
		svc, err := CreateEmbeddingService(file.EmbeddingConfig{APIKey: "sk-test"})
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.Equal(t, "text-embedding-3-small", svc.ModelName())
	})

	t.Run("openai requires an api key", func(t *testing.T) {
		_, err := CreateEmbeddingService(file.EmbeddingConfig{Provider: "openai"})
		assert.Error(t, err)
	})

	t.Run("ollama needs no api key", func(t *testing.T) {
		svc, err := CreateEmbeddingService(file.EmbeddingConfig{Provider: "ollama"})
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.Equal(t, "nomic-embed-text", svc.ModelName())
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		_, err := CreateEmbeddingService(file.EmbeddingConfig{Provider: "mystery"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown embedding provider")
	})
}

func TestCreateAnswerService(t *testing.T) {
	t.Run("no provider yields nil service", func(t *testing.T) {
		svc, err := CreateAnswerService(file.AnswerConfig{})
		require.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("openai", func(t *testing.T) {
		svc, err := CreateAnswerService(file.AnswerConfig{Provider: "openai", APIKey: "sk-test"})
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.Equal(t, "gpt-4o-mini", svc.ModelName())
	})

	t.Run("anthropic", func(t *testing.T) {
		svc, err := CreateAnswerService(file.AnswerConfig{Provider: "anthropic", APIKey: "sk-ant-test"})
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.Equal(t, "claude-3-5-haiku-latest", svc.ModelName())
	})

	t.Run("ollama", func(t *testing.T) {
		svc, err := CreateAnswerService(file.AnswerConfig{Provider: "ollama"})
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.Equal(t, "llama3.2", svc.ModelName())
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		_, err := CreateAnswerService(file.AnswerConfig{Provider: "mystery"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown answer provider")
	})
}

func TestValidateAnswerConfig_NoProvider(t *testing.T) {
	assert.NoError(t, ValidateAnswerConfig(file.AnswerConfig{}))
}
