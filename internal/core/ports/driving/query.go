package driving

import (
	"context"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// QueryService answers questions over the loaded index artifact.
type QueryService interface {
	// Ask retrieves the top-k most similar documents and generates an
	// answer from them. When answer generation is unavailable the
	// returned result still carries the assembled context and hits,
	// together with domain.ErrAnswerUnavailable.
	Ask(ctx context.Context, question string, k int) (domain.QueryResult, error)

	// Retrieve returns the top-k most similar documents without
	// invoking answer generation.
	Retrieve(ctx context.Context, question string, k int) ([]domain.RetrievedDocument, error)

	// Size returns the corpus size of the loaded artifact.
	Size() int

	// ModelID returns the embedding model identifier of the loaded artifact.
	ModelID() string
}
