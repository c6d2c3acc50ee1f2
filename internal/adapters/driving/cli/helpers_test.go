package cli

import (
	"context"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driving"
)

// fakeQueryService is a canned QueryService for command tests.
type fakeQueryService struct {
	result  domain.QueryResult
	askErr  error
	hits    []domain.RetrievedDocument
	hitsErr error
}

var _ driving.QueryService = (*fakeQueryService)(nil)

func (f *fakeQueryService) Ask(_ context.Context, question string, _ int) (domain.QueryResult, error) {
	result := f.result
	result.Question = question
	return result, f.askErr
}

func (f *fakeQueryService) Retrieve(_ context.Context, _ string, _ int) ([]domain.RetrievedDocument, error) {
	return f.hits, f.hitsErr
}

func (f *fakeQueryService) Size() int { return len(f.hits) }

func (f *fakeQueryService) ModelID() string { return "fake-model" }

// fakeBuildService is a canned BuildService for command tests.
type fakeBuildService struct {
	summary driving.BuildSummary
	err     error
	calls   int
}

var _ driving.BuildService = (*fakeBuildService)(nil)

func (f *fakeBuildService) Build(_ context.Context) (driving.BuildSummary, error) {
	f.calls++
	return f.summary, f.err
}

// fakeInsightService is a canned InsightService for command tests.
type fakeInsightService struct {
	prediction    domain.Prediction
	predictErr    error
	contributions []domain.FeatureContribution
	explainErr    error
	lastFeatures  domain.FeatureVector
}

var _ driving.InsightService = (*fakeInsightService)(nil)

func (f *fakeInsightService) Predict(_ context.Context, features domain.FeatureVector) (domain.Prediction, error) {
	f.lastFeatures = features
	return f.prediction, f.predictErr
}

func (f *fakeInsightService) Explain(_ context.Context, features domain.FeatureVector) ([]domain.FeatureContribution, error) {
	f.lastFeatures = features
	return f.contributions, f.explainErr
}

// setupTestServices injects fakes for all services and returns a
// cleanup function restoring the previous state.
func setupTestServices() func() {
	prevQuery := queryService
	prevBuild := buildService
	prevInsight := insightService

	queryService = &fakeQueryService{
		result: domain.QueryResult{
			Answer:  "Mostly customers with many service calls.",
			Context: "CustomerID: 0 | State: KS",
			Hits: []domain.RetrievedDocument{
				{Position: 0, Score: 0.92, Document: domain.Document{Position: 0, Text: "CustomerID: 0 | State: KS"}},
			},
		},
		hits: []domain.RetrievedDocument{
			{Position: 0, Score: 0.92, Document: domain.Document{Position: 0, Text: "CustomerID: 0 | State: KS"}},
			{Position: 3, Score: 0.87, Document: domain.Document{Position: 3, Text: "CustomerID: 3 | State: OH"}},
		},
	}
	buildService = &fakeBuildService{
		summary: driving.BuildSummary{
			BuildID:   "test-build",
			Documents: 3333,
			Dimension: 384,
			ModelID:   "fake-model",
			Location:  "/tmp/artifact.db",
		},
	}
	insightService = &fakeInsightService{
		prediction: domain.Prediction{Churn: true, Probability: 0.83},
		contributions: []domain.FeatureContribution{
			{Feature: "CustServ_Calls", Contribution: 0.41, Value: 5},
			{Feature: "Intl_Plan", Contribution: -0.12, Value: 0},
		},
	}

	return func() {
		queryService = prevQuery
		buildService = prevBuild
		insightService = prevInsight
		rootCmd.SetArgs(nil)
	}
}
