package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driven"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driving"
	"github.com/churnlens/churnlens-cli/internal/logger"
	"github.com/churnlens/churnlens-cli/internal/vector"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// contextSeparator joins retrieved documents into the context string.
const contextSeparator = "\n"

// QueryService answers questions over one loaded artifact. The artifact
// and index are read-only after construction, so a single QueryService
// is safe for any number of concurrent queries.
type QueryService struct {
	artifact *domain.Artifact
	index    *vector.Flat
	embedder driven.EmbeddingService
	answerer driven.AnswerService
}

// NewQueryService builds the in-memory index from a loaded artifact and
// wires the external capabilities. The embedding model must match the
// one recorded in the artifact; querying vectors produced by a
// different model is domain.ErrModelMismatch, not a silent degradation.
// The answerer may be nil; Ask then always degrades to context-only
// results.
func NewQueryService(
	artifact *domain.Artifact,
	embedder driven.EmbeddingService,
	answerer driven.AnswerService,
) (*QueryService, error) {
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	if embedder.ModelName() != artifact.ModelID {
		return nil, fmt.Errorf("%w: artifact built with %q, embedder is %q",
			domain.ErrModelMismatch, artifact.ModelID, embedder.ModelName())
	}

	idx, err := vector.NewFlat(artifact.Vectors)
	if err != nil {
		return nil, fmt.Errorf("indexing artifact: %w", err)
	}

	return &QueryService{
		artifact: artifact,
		index:    idx,
		embedder: embedder,
		answerer: answerer,
	}, nil
}

// Size returns the corpus size of the loaded artifact.
func (s *QueryService) Size() int {
	return s.artifact.Size()
}

// ModelID returns the embedding model identifier of the loaded artifact.
func (s *QueryService) ModelID() string {
	return s.artifact.ModelID
}

// Retrieve embeds the question, normalises the query vector, and
// returns the top-k documents by inner product.
func (s *QueryService) Retrieve(ctx context.Context, question string, k int) ([]domain.RetrievedDocument, error) {
	logger.Section("Retrieval")
	logger.Debug("Question: %q, k=%d", question, k)

	if s.index.Size() == 0 || k <= 0 {
		logger.Debug("Empty corpus or k<=0, returning no hits")
		return []domain.RetrievedDocument{}, nil
	}

	raw, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding question: %v", domain.ErrEmbeddingUnavailable, err)
	}
	query := vector.Normalize(raw)

	hits, err := s.index.Search(query, k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	logger.Debug("Hits: %d", len(hits))

	results := make([]domain.RetrievedDocument, len(hits))
	for i, h := range hits {
		results[i] = domain.RetrievedDocument{
			Position: h.Position,
			Score:    h.Score,
			Document: s.artifact.Documents[h.Position],
			Metadata: s.artifact.Metadata[h.Position],
		}
	}
	return results, nil
}

// Ask retrieves context for the question and generates an answer. On
// answer-generation failure the result still carries the assembled
// context and hits alongside domain.ErrAnswerUnavailable, so the caller
// decides whether to surface the context as a degraded answer.
func (s *QueryService) Ask(ctx context.Context, question string, k int) (domain.QueryResult, error) {
	hits, err := s.Retrieve(ctx, question, k)
	if err != nil {
		return domain.QueryResult{}, err
	}

	result := domain.QueryResult{
		Question: question,
		Context:  assembleContext(hits),
		Hits:     hits,
	}

	if s.answerer == nil {
		logger.Warn("No answer service configured, returning context only")
		return result, domain.ErrAnswerUnavailable
	}

	answer, err := s.answerer.Generate(ctx, question, result.Context)
	if err != nil {
		logger.Warn("Answer generation failed: %v", err)
		return result, fmt.Errorf("%w: %v", domain.ErrAnswerUnavailable, err)
	}

	result.Answer = answer
	return result, nil
}

// assembleContext joins the retrieved documents in search order.
func assembleContext(hits []domain.RetrievedDocument) string {
	if len(hits) == 0 {
		return ""
	}
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Document.Text
	}
	return strings.Join(texts, contextSeparator)
}
