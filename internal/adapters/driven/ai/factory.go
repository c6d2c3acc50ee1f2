// Package ai provides factory functions for creating the embedding and
// answer-generation adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/churnlens/churnlens-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/churnlens/churnlens-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/churnlens/churnlens-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/churnlens/churnlens-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/churnlens/churnlens-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/churnlens/churnlens-cli/internal/adapters/driven/llm/openai"
	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding adapter selected by the
// configuration. An empty provider defaults to OpenAI.
func CreateEmbeddingService(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "", "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// CreateAnswerService creates the answer-generation adapter selected by
// the configuration. Returns nil when no provider is configured; ask
// then degrades to context-only results.
func CreateAnswerService(cfg file.AnswerConfig) (driven.AnswerService, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return openaillm.NewAnswerService(openaillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "anthropic":
		return anthropicllm.NewAnswerService(anthropicllm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "ollama":
		return ollamallm.NewAnswerService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown answer provider %q", cfg.Provider)
	}
}

// ValidateEmbeddingConfig creates the configured embedding service and
// pings it. Intended for the settings flow, so bad credentials surface
// at configuration time rather than at the first build.
func ValidateEmbeddingConfig(cfg file.EmbeddingConfig) error {
	svc, err := CreateEmbeddingService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return nil
}

// ValidateAnswerConfig creates the configured answer service and pings
// it. A configuration without a provider is valid.
func ValidateAnswerConfig(cfg file.AnswerConfig) error {
	svc, err := CreateAnswerService(cfg)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrAnswerUnavailable, err)
	}
	return nil
}
