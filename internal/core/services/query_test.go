package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/vector"
)

// testArtifact builds a small consistent artifact with unit-normalised
// vectors.
func testArtifact(t *testing.T, vectors [][]float32, model string) *domain.Artifact {
	t.Helper()
	vector.NormalizeAll(vectors)

	docs := make([]domain.Document, len(vectors))
	metas := make([]domain.Metadata, len(vectors))
	for i := range vectors {
		docs[i] = domain.Document{Position: i, Text: "doc " + string(rune('A'+i))}
		metas[i] = domain.Metadata{"index": i, "churn": i % 2}
	}

	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	return &domain.Artifact{
		BuildID:   "build-1",
		ModelID:   model,
		Dimension: dim,
		Vectors:   vectors,
		Documents: docs,
		Metadata:  metas,
		CreatedAt: time.Now().UTC(),
	}
}

func TestNewQueryService_ModelMismatch(t *testing.T) {
	artifact := testArtifact(t, [][]float32{{1, 0}}, "model-a")
	embedder := &mockEmbeddingService{embedding: []float32{1, 0}, model: "model-b"}

	_, err := NewQueryService(artifact, embedder, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelMismatch)
}

func TestNewQueryService_CorruptArtifact(t *testing.T) {
	artifact := testArtifact(t, [][]float32{{1, 0}, {0, 1}}, "mock-embed")
	artifact.Documents = artifact.Documents[:1]

	embedder := &mockEmbeddingService{embedding: []float32{1, 0}}
	_, err := NewQueryService(artifact, embedder, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactCorrupt)
}

func TestQueryService_Retrieve_OrdersByScore(t *testing.T) {
	artifact := testArtifact(t, [][]float32{{1, 0}, {0, 1}, {1, 1}}, "mock-embed")
	embedder := &mockEmbeddingService{embedding: []float32{1, 0}}

	svc, err := NewQueryService(artifact, embedder, nil)
	require.NoError(t, err)

	hits, err := svc.Retrieve(context.Background(), "who churns?", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, 0, hits[0].Position)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, 2, hits[1].Position)
	assert.InDelta(t, 0.7071, hits[1].Score, 1e-3)
	assert.Equal(t, "doc A", hits[0].Document.Text)
	assert.Equal(t, 0, hits[0].Metadata["index"])
}

func TestQueryService_Retrieve_EmptyCorpus(t *testing.T) {
	artifact := testArtifact(t, nil, "mock-embed")
	embedder := &mockEmbeddingService{embedding: []float32{1, 0}}

	svc, err := NewQueryService(artifact, embedder, nil)
	require.NoError(t, err)

	hits, err := svc.Retrieve(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestQueryService_Retrieve_EmbeddingFailure(t *testing.T) {
	artifact := testArtifact(t, [][]float32{{1, 0}}, "mock-embed")
	embedder := &mockEmbeddingService{embedding: []float32{1, 0}}

	svc, err := NewQueryService(artifact, embedder, nil)
	require.NoError(t, err)

	embedder.err = errors.New("connection refused")
	_, err = svc.Retrieve(context.Background(), "anything", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestQueryService_Ask_Success(t *testing.T) {
	artifact := testArtifact(t, [][]float32{{1, 0}, {0, 1}}, "mock-embed")
	embedder := &mockEmbeddingService{embedding: []float32{1, 0}}
	answerer := &mockAnswerService{answer: "High service calls drive churn."}

	svc, err := NewQueryService(artifact, embedder, answerer)
	require.NoError(t, err)

	result, err := svc.Ask(context.Background(), "what drives churn?", 2)
	require.NoError(t, err)

	assert.Equal(t, "High service calls drive churn.", result.Answer)
	assert.Equal(t, "doc A\ndoc B", result.Context)
	assert.Len(t, result.Hits, 2)
	assert.Equal(t, "what drives churn?", answerer.lastQuestion)
	assert.Equal(t, result.Context, answerer.lastContext)
}

func TestQueryService_Ask_EmptyCorpus(t *testing.T) {
	artifact := testArtifact(t, nil, "mock-embed")
	embedder := &mockEmbeddingService{embedding: []float32{1, 0}}
	answerer := &mockAnswerService{answer: "no data"}

	svc, err := NewQueryService(artifact, embedder, answerer)
	require.NoError(t, err)

	result, err := svc.Ask(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Equal(t, "", result.Context)
	assert.Empty(t, result.Hits)
	assert.Equal(t, "no data", result.Answer)
}

func TestQueryService_Ask_AnswerUnavailable_Degrades(t *testing.T) {
	artifact := testArtifact(t, [][]float32{{1, 0}}, "mock-embed")
	embedder := &mockEmbeddingService{embedding: []float32{1, 0}}
	answerer := &mockAnswerService{err: errors.New("model overloaded")}

	svc, err := NewQueryService(artifact, embedder, answerer)
	require.NoError(t, err)

	result, err := svc.Ask(context.Background(), "anything", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)

	// The context survives for degraded-mode display.
	assert.Equal(t, "doc A", result.Context)
	assert.Len(t, result.Hits, 1)
	assert.Empty(t, result.Answer)
}

func TestQueryService_Ask_NoAnswerer(t *testing.T) {
	artifact := testArtifact(t, [][]float32{{1, 0}}, "mock-embed")
	embedder := &mockEmbeddingService{embedding: []float32{1, 0}}

	svc, err := NewQueryService(artifact, embedder, nil)
	require.NoError(t, err)

	result, err := svc.Ask(context.Background(), "anything", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
	assert.Equal(t, "doc A", result.Context)
}
