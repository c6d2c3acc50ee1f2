package services

import (
	"context"
	"sync"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// --- Mock implementations shared by the service tests ---

// mockRecordSource implements driven.RecordSource.
type mockRecordSource struct {
	records []domain.Record
	err     error
}

func (m *mockRecordSource) Records(_ context.Context) ([]domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

// mockEmbeddingService implements driven.EmbeddingService. It returns a
// fixed vector per text unless vectors is set, in which case texts are
// matched positionally across calls.
type mockEmbeddingService struct {
	embedding  []float32
	vectors    [][]float32
	err        error
	model      string
	dims       int
	mu         sync.Mutex
	calls      int
	batchSizes []int
	next       int
}

func (m *mockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.calls++
	m.batchSizes = append(m.batchSizes, len(texts))

	out := make([][]float32, len(texts))
	for i := range texts {
		if m.vectors != nil {
			out[i] = append([]float32(nil), m.vectors[m.next]...)
			m.next++
		} else {
			out[i] = append([]float32(nil), m.embedding...)
		}
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return len(m.embedding)
}

func (m *mockEmbeddingService) ModelName() string {
	if m.model != "" {
		return m.model
	}
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockArtifactStore implements driven.ArtifactStore.
type mockArtifactStore struct {
	mu        sync.Mutex
	artifacts map[string]*domain.Artifact
	saveErr   error
	loadErr   error
	saves     int
}

func newMockArtifactStore() *mockArtifactStore {
	return &mockArtifactStore{artifacts: make(map[string]*domain.Artifact)}
}

func (m *mockArtifactStore) Save(_ context.Context, artifact *domain.Artifact, location string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.artifacts[location] = artifact
	return nil
}

func (m *mockArtifactStore) Load(_ context.Context, location string) (*domain.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	a, ok := m.artifacts[location]
	if !ok {
		return nil, domain.ErrArtifactMissing
	}
	return a, nil
}

// mockAnswerService implements driven.AnswerService.
type mockAnswerService struct {
	answer       string
	err          error
	lastQuestion string
	lastContext  string
}

func (m *mockAnswerService) Generate(_ context.Context, question, retrieved string) (string, error) {
	m.lastQuestion = question
	m.lastContext = retrieved
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockAnswerService) ModelName() string            { return "mock-answer" }
func (m *mockAnswerService) Ping(_ context.Context) error { return nil }
func (m *mockAnswerService) Close() error                 { return nil }

// mockClassifier implements driven.ChurnClassifier.
type mockClassifier struct {
	prediction    domain.Prediction
	contributions []domain.FeatureContribution
	predictErr    error
	explainErr    error
}

func (m *mockClassifier) Predict(_ context.Context, _ domain.FeatureVector) (domain.Prediction, error) {
	if m.predictErr != nil {
		return domain.Prediction{}, m.predictErr
	}
	return m.prediction, nil
}

func (m *mockClassifier) Explain(_ context.Context, _ domain.FeatureVector) ([]domain.FeatureContribution, error) {
	if m.explainErr != nil {
		return nil, m.explainErr
	}
	return m.contributions, nil
}

func (m *mockClassifier) Ping(_ context.Context) error { return nil }
func (m *mockClassifier) Close() error                 { return nil }
