package driven

import (
	"context"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// ArtifactStore persists one index artifact per storage location and
// reconstructs it wholesale. Save is atomic: either all four sections
// (vectors, documents, metadata, model identifier) are persisted or
// none are - a partial write must never be loadable.
type ArtifactStore interface {
	// Save writes the artifact to the location as one atomic unit.
	// When two builds race on the same location, the later writer wins.
	Save(ctx context.Context, artifact *domain.Artifact, location string) error

	// Load reads the artifact back. It fails with domain.ErrArtifactMissing
	// when the location does not exist and domain.ErrArtifactCorrupt when
	// the sections cannot be deserialised consistently.
	Load(ctx context.Context, location string) (*domain.Artifact, error)
}
