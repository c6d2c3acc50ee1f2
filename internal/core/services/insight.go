package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driven"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driving"
	"github.com/churnlens/churnlens-cli/internal/logger"
)

// Ensure InsightService implements the interface.
var _ driving.InsightService = (*InsightService)(nil)

// InsightService fronts the external churn classifier. It validates
// inputs and enforces the explanation ordering contract regardless of
// what the remote service returns.
type InsightService struct {
	classifier driven.ChurnClassifier
}

// NewInsightService creates an insight service.
func NewInsightService(classifier driven.ChurnClassifier) *InsightService {
	return &InsightService{classifier: classifier}
}

// Predict returns the churn verdict for one customer's features.
func (s *InsightService) Predict(ctx context.Context, features domain.FeatureVector) (domain.Prediction, error) {
	if err := validateFeatures(features); err != nil {
		return domain.Prediction{}, err
	}
	if s.classifier == nil {
		return domain.Prediction{}, domain.ErrClassifierUnavailable
	}

	pred, err := s.classifier.Predict(ctx, features)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("predicting churn: %w", err)
	}
	logger.Debug("Prediction: churn=%t probability=%.4f", pred.Churn, pred.Probability)
	return pred, nil
}

// Explain returns the ranked feature contributions for one customer's
// features, sorted by descending absolute contribution.
func (s *InsightService) Explain(ctx context.Context, features domain.FeatureVector) ([]domain.FeatureContribution, error) {
	if err := validateFeatures(features); err != nil {
		return nil, err
	}
	if s.classifier == nil {
		return nil, domain.ErrClassifierUnavailable
	}

	contributions, err := s.classifier.Explain(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("explaining prediction: %w", err)
	}

	// The remote service promises this order; enforce it anyway so the
	// presentation layers never depend on remote behaviour.
	sort.SliceStable(contributions, func(i, j int) bool {
		return math.Abs(contributions[i].Contribution) > math.Abs(contributions[j].Contribution)
	})
	return contributions, nil
}

func validateFeatures(features domain.FeatureVector) error {
	if len(features) == 0 {
		return fmt.Errorf("%w: empty feature vector", domain.ErrInvalidInput)
	}
	for name, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: feature %q is not finite", domain.ErrInvalidInput, name)
		}
	}
	return nil
}
