package domain

import "errors"

// Domain errors represent the failure taxonomy of the build and query
// pipelines. Callers distinguish transient capability outages from
// permanent data problems with errors.Is.
var (
	// ErrDimensionMismatch indicates vectors of inconsistent length
	// reached the index. Fatal to the current build; no partial
	// artifact is ever persisted.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding capability is
	// unreachable or returned a malformed response. Transient; retry
	// is the caller's responsibility.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAnswerUnavailable indicates the answer-generation capability
	// failed. The query result still carries the assembled context, so
	// callers may surface it as a degraded-mode answer.
	ErrAnswerUnavailable = errors.New("answer generation unavailable")

	// ErrClassifierUnavailable indicates the external churn classifier
	// is unreachable or returned a malformed response.
	ErrClassifierUnavailable = errors.New("churn classifier unavailable")

	// ErrArtifactMissing indicates no artifact exists at the given
	// location. Fatal to startup; there is no fallback to an empty index.
	ErrArtifactMissing = errors.New("index artifact missing")

	// ErrArtifactCorrupt indicates the artifact's sections could not be
	// deserialised consistently (mismatched lengths, bad manifest).
	ErrArtifactCorrupt = errors.New("index artifact corrupt")

	// ErrModelMismatch indicates the loaded artifact was built with a
	// different embedding model than the one configured for querying.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
