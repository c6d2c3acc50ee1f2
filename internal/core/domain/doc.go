// Package domain defines the core business entities for churnlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A structured row from the record source
//   - Document: The canonical text form of one record
//   - Metadata: Per-document labels carried alongside the corpus
//   - Artifact: The persisted index bundle (vectors, documents, metadata, model)
//   - QueryResult: The outcome of a retrieval-augmented question
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
