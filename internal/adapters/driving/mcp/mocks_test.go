package mcp

import (
	"context"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	result  domain.QueryResult
	askErr  error
	hits    []domain.RetrievedDocument
	hitsErr error
	size    int
	modelID string
}

func (m *mockQueryService) Ask(_ context.Context, question string, _ int) (domain.QueryResult, error) {
	result := m.result
	result.Question = question
	return result, m.askErr
}

func (m *mockQueryService) Retrieve(_ context.Context, _ string, _ int) ([]domain.RetrievedDocument, error) {
	return m.hits, m.hitsErr
}

func (m *mockQueryService) Size() int { return m.size }

func (m *mockQueryService) ModelID() string { return m.modelID }

// mockInsightService is a mock implementation of driving.InsightService.
type mockInsightService struct {
	prediction    domain.Prediction
	contributions []domain.FeatureContribution
	err           error
}

func (m *mockInsightService) Predict(_ context.Context, _ domain.FeatureVector) (domain.Prediction, error) {
	return m.prediction, m.err
}

func (m *mockInsightService) Explain(_ context.Context, _ domain.FeatureVector) ([]domain.FeatureContribution, error) {
	return m.contributions, m.err
}
