package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations wrap an external capability behind a stable interface.
// Any capability is interchangeable as long as it reports a stable model
// identifier and a stable dimension; the identifier is recorded in the
// persisted artifact and checked again at query time.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates one embedding per input text, in input order.
	// A result count that differs from the input count is an error
	// (domain.ErrEmbeddingUnavailable), never a partial result.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	Dimensions() int

	// ModelName returns the identifier of the embedding model.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
