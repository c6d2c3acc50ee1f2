// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordSource: Supplies the ordered structured records to index
//   - EmbeddingService: Turns text into fixed-dimension vectors
//   - ArtifactStore: Persists and reloads the index artifact
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AnswerService: Generates answers from retrieved context. Without it,
//     queries return the assembled context instead of an answer.
//   - ChurnClassifier: The external prediction/explanation service. Without
//     it, the predict and explain surfaces are disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
