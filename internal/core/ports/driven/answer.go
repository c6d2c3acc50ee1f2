package driven

import "context"

// AnswerService generates a natural-language answer from a question and
// retrieved context. This is the only contract the core has with the
// generative model; prompt construction is an adapter concern.
//
// Implementations may include:
//   - OpenAI (chat completions)
//   - Anthropic (messages)
//   - Ollama (local models)
type AnswerService interface {
	// Generate produces an answer to the question given the retrieved
	// context. The retrieved context may be empty; implementations must
	// still answer rather than fail.
	Generate(ctx context.Context, question, retrieved string) (string, error)

	// ModelName returns the identifier of the generative model.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
