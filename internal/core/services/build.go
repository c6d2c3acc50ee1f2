package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driven"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driving"
	"github.com/churnlens/churnlens-cli/internal/logger"
	"github.com/churnlens/churnlens-cli/internal/synthesis"
	"github.com/churnlens/churnlens-cli/internal/vector"
)

// Ensure BuildService implements the interface.
var _ driving.BuildService = (*BuildService)(nil)

// DefaultBatchSize bounds how many documents go to the embedding
// service per request.
const DefaultBatchSize = 64

// BuildService runs the sequential build pipeline: records in, one
// persisted artifact out. Nothing is persisted unless every stage
// succeeds.
type BuildService struct {
	source    driven.RecordSource
	embedder  driven.EmbeddingService
	store     driven.ArtifactStore
	location  string
	batchSize int
}

// NewBuildService creates a build service targeting the given artifact
// location.
func NewBuildService(
	source driven.RecordSource,
	embedder driven.EmbeddingService,
	store driven.ArtifactStore,
	location string,
) *BuildService {
	return &BuildService{
		source:    source,
		embedder:  embedder,
		store:     store,
		location:  location,
		batchSize: DefaultBatchSize,
	}
}

// SetBatchSize overrides the embedding batch size. Values below one
// fall back to the default.
func (s *BuildService) SetBatchSize(n int) {
	if n < 1 {
		n = DefaultBatchSize
	}
	s.batchSize = n
}

// Build synthesises, embeds, normalises, indexes, and persists the
// corpus as one artifact.
func (s *BuildService) Build(ctx context.Context) (driving.BuildSummary, error) {
	logger.Section("Index Build")

	records, err := s.source.Records(ctx)
	if err != nil {
		return driving.BuildSummary{}, fmt.Errorf("loading records: %w", err)
	}
	logger.Info("Records loaded: %d", len(records))

	documents := make([]domain.Document, len(records))
	metadata := make([]domain.Metadata, len(records))
	texts := make([]string, len(records))
	for i, rec := range records {
		documents[i] = synthesis.Synthesize(rec, i)
		metadata[i] = synthesis.Labels(rec, i)
		texts[i] = documents[i].Text
	}

	vectors, err := s.embedAll(ctx, texts)
	if err != nil {
		return driving.BuildSummary{}, err
	}
	vector.NormalizeAll(vectors)

	// Validates that every vector shares one dimension.
	idx, err := vector.NewFlat(vectors)
	if err != nil {
		return driving.BuildSummary{}, fmt.Errorf("building index: %w", err)
	}
	logger.Info("Index built: %d vectors, dimension %d", idx.Size(), idx.Dimension())

	artifact := &domain.Artifact{
		BuildID:   uuid.NewString(),
		ModelID:   s.embedder.ModelName(),
		Dimension: idx.Dimension(),
		Vectors:   vectors,
		Documents: documents,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := artifact.Validate(); err != nil {
		return driving.BuildSummary{}, fmt.Errorf("assembling artifact: %w", err)
	}

	if err := s.store.Save(ctx, artifact, s.location); err != nil {
		return driving.BuildSummary{}, fmt.Errorf("persisting artifact: %w", err)
	}
	logger.Info("Artifact persisted: %s", s.location)

	return driving.BuildSummary{
		BuildID:   artifact.BuildID,
		Documents: artifact.Size(),
		Dimension: artifact.Dimension,
		ModelID:   artifact.ModelID,
		Location:  s.location,
	}, nil
}

// embedAll embeds the texts in bounded batches, preserving order. A
// count mismatch from the embedding service aborts the build.
func (s *BuildService) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += s.batchSize {
		end := start + s.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := s.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d-%d: %w", start, end, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("%w: batch %d-%d returned %d embeddings",
				domain.ErrEmbeddingUnavailable, start, end, len(batch))
		}
		vectors = append(vectors, batch...)
		logger.Debug("Embedded %d/%d documents", end, len(texts))
	}
	return vectors, nil
}
