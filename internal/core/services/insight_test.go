package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

var testFeatures = domain.FeatureVector{
	"Account_Length":         128,
	"Customer_Service_Calls": 4,
	"Total_Day_Minutes":      265.1,
}

func TestInsightService_Predict(t *testing.T) {
	classifier := &mockClassifier{prediction: domain.Prediction{Churn: true, Probability: 0.83}}
	svc := NewInsightService(classifier)

	pred, err := svc.Predict(context.Background(), testFeatures)
	require.NoError(t, err)
	assert.True(t, pred.Churn)
	assert.InDelta(t, 0.83, pred.Probability, 1e-9)
}

func TestInsightService_Predict_EmptyFeatures(t *testing.T) {
	svc := NewInsightService(&mockClassifier{})
	_, err := svc.Predict(context.Background(), domain.FeatureVector{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInsightService_Predict_NonFiniteFeature(t *testing.T) {
	svc := NewInsightService(&mockClassifier{})
	_, err := svc.Predict(context.Background(), domain.FeatureVector{"x": math.NaN()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInsightService_Predict_NoClassifier(t *testing.T) {
	svc := NewInsightService(nil)
	_, err := svc.Predict(context.Background(), testFeatures)
	assert.ErrorIs(t, err, domain.ErrClassifierUnavailable)
}

func TestInsightService_Predict_ClassifierFailure(t *testing.T) {
	classifier := &mockClassifier{predictErr: errors.New("timeout")}
	svc := NewInsightService(classifier)
	_, err := svc.Predict(context.Background(), testFeatures)
	require.Error(t, err)
}

func TestInsightService_Explain_EnforcesOrdering(t *testing.T) {
	// The remote returns contributions out of order; the service must
	// re-rank by absolute contribution.
	classifier := &mockClassifier{contributions: []domain.FeatureContribution{
		{Feature: "Account_Length", Contribution: 0.02, Value: 128},
		{Feature: "Customer_Service_Calls", Contribution: 0.41, Value: 4},
		{Feature: "Total_Day_Minutes", Contribution: -0.18, Value: 265.1},
	}}
	svc := NewInsightService(classifier)

	out, err := svc.Explain(context.Background(), testFeatures)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Customer_Service_Calls", out[0].Feature)
	assert.Equal(t, "Total_Day_Minutes", out[1].Feature)
	assert.Equal(t, "Account_Length", out[2].Feature)
}
