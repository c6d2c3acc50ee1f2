package domain

import (
	"fmt"
	"time"
)

// Document is the canonical text form of one source record.
// It is immutable once synthesised: the text never changes and the
// position is assigned at build time and never reused.
type Document struct {
	// Position is the document's stable positional identifier,
	// equal to its index in the corpus.
	Position int

	// Text is the synthesised document content.
	Text string
}

// Metadata carries per-document labels for downstream consumers.
// It always contains at least "index" (the originating record's position)
// and "churn" (the binary outcome label, -1 when unknown).
type Metadata map[string]any

// Artifact is the persisted index bundle: normalised vectors, the
// parallel documents and metadata arrays, and the identifier of the
// embedding model that produced the vectors. It is created once by the
// build pipeline and read-only thereafter.
type Artifact struct {
	// BuildID uniquely identifies the build that produced this artifact.
	BuildID string

	// ModelID is the embedding model identifier. Checked at load time;
	// querying with a different model is an error, not a silent mismatch.
	ModelID string

	// Dimension is the embedding dimension shared by every vector.
	Dimension int

	// Vectors holds one unit-normalised embedding per document,
	// in positional order.
	Vectors [][]float32

	// Documents holds the corpus in positional order.
	Documents []Document

	// Metadata holds the per-document labels in positional order.
	Metadata []Metadata

	// CreatedAt is when the build completed.
	CreatedAt time.Time
}

// Size returns the number of documents in the artifact.
func (a *Artifact) Size() int {
	return len(a.Documents)
}

// Validate checks the artifact's internal consistency: the vectors,
// documents, and metadata arrays must have equal length, every vector
// must match the declared dimension, and every document must carry its
// own position. A violation means the artifact was corrupted or
// assembled incorrectly.
func (a *Artifact) Validate() error {
	if len(a.Vectors) != len(a.Documents) || len(a.Documents) != len(a.Metadata) {
		return fmt.Errorf("%w: %d vectors, %d documents, %d metadata entries",
			ErrArtifactCorrupt, len(a.Vectors), len(a.Documents), len(a.Metadata))
	}
	for i, v := range a.Vectors {
		if len(v) != a.Dimension {
			return fmt.Errorf("%w: vector %d has dimension %d, manifest says %d",
				ErrArtifactCorrupt, i, len(v), a.Dimension)
		}
	}
	for i := range a.Documents {
		if a.Documents[i].Position != i {
			return fmt.Errorf("%w: document at index %d carries position %d",
				ErrArtifactCorrupt, i, a.Documents[i].Position)
		}
	}
	return nil
}
