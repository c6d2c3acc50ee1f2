package driving

import "context"

// BuildSummary reports the outcome of a completed index build.
type BuildSummary struct {
	// BuildID identifies the produced artifact.
	BuildID string

	// Documents is the corpus size.
	Documents int

	// Dimension is the embedding dimension.
	Dimension int

	// ModelID is the embedding model identifier recorded in the artifact.
	ModelID string

	// Location is where the artifact was persisted.
	Location string
}

// BuildService runs the index build pipeline: records are synthesised
// into documents, embedded, normalised, indexed, and persisted as one
// artifact. A failed build persists nothing.
type BuildService interface {
	Build(ctx context.Context) (BuildSummary, error)
}
