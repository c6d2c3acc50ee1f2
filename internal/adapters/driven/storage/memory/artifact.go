// Package memory provides in-memory driven-port implementations for
// tests and ephemeral runs. Nothing here survives the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore keeps artifacts in a map keyed by location. Saved
// artifacts are deep-copied so later mutation by the caller cannot
// corrupt the stored copy.
type ArtifactStore struct {
	mu        sync.RWMutex
	artifacts map[string]*domain.Artifact
}

// NewArtifactStore creates an empty in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{artifacts: make(map[string]*domain.Artifact)}
}

// Save stores a deep copy of the artifact under the location.
func (s *ArtifactStore) Save(_ context.Context, artifact *domain.Artifact, location string) error {
	if err := artifact.Validate(); err != nil {
		return fmt.Errorf("refusing to store inconsistent artifact: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[location] = copyArtifact(artifact)
	return nil
}

// Load returns a deep copy of the artifact stored under the location.
func (s *ArtifactStore) Load(_ context.Context, location string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.artifacts[location]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactMissing, location)
	}
	return copyArtifact(artifact), nil
}

func copyArtifact(a *domain.Artifact) *domain.Artifact {
	out := &domain.Artifact{
		BuildID:   a.BuildID,
		ModelID:   a.ModelID,
		Dimension: a.Dimension,
		Vectors:   make([][]float32, len(a.Vectors)),
		Documents: append([]domain.Document(nil), a.Documents...),
		Metadata:  make([]domain.Metadata, len(a.Metadata)),
		CreatedAt: a.CreatedAt,
	}
	for i, v := range a.Vectors {
		out.Vectors[i] = append([]float32(nil), v...)
	}
	for i, m := range a.Metadata {
		meta := make(domain.Metadata, len(m))
		for k, v := range m {
			meta[k] = v
		}
		out.Metadata[i] = meta
	}
	return out
}
